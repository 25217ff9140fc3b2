package config

// this holds the resolved configuration values from CLI
var (
	InputArchive  string // path to the zip archive containing session result files
	OutputFile    string // path of the csv report to write
	CarModelsFile string // optional yaml file with additional car model names
	LogLevel      string // sets the log level (zap log level values)
	LogFormat     string // text vs json
	LogFilter     string // zapfilter rules scoping log levels per logger name
)
