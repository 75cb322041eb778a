package core

type Conf struct {
	Version            string `long:"version" description:"version of qonform" env:"QONFORM_VERSION"`
	DevMode            bool   `long:"dev-mode" description:"run in dev mode" env:"QONFORM_DEV_MODE"`
	DisableStdoutLog   bool   `long:"disable-stdout-log" description:"do not log in standard output" env:"QONFORM_DISABLE_STDOUT_LOG"`
	EnableFileLog      bool   `long:"enable-file-log" description:"enable log in file" env:"QONFORM_ENABLE_FILE_LOG"`
	LogDir             string `long:"log-dir" description:"rotating log file dir" default:"./shares/logs" env:"QONFORM_LOG_DIR"`
	LogLevel           string `long:"log-level" description:"log level" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error" env:"QONFORM_LOG_LEVEL"`
	LogRotationMaxDays int    `long:"log-rotation-max-days" description:"max days of log rotation" default:"7" env:"QONFORM_LOG_ROTATION_MAX_DAYS"`
	DeviceSettingPath  string `long:"device-setting-path" description:"device setting file path" default:"./device_setting.toml" env:"QONFORM_DEVICE_SETTING_PATH"`
	SettingPath        string `long:"setting-path" description:"setting file path" default:"./setting/setting.toml" env:"QONFORM_SETTING_PATH"`
	Shots              int    `long:"shots" description:"number of shots per execution, 0 runs analytic probabilities" default:"0" env:"QONFORM_SHOTS"`
	Seed               int64  `long:"seed" description:"seed of the pseudo random number generator" default:"42" env:"QONFORM_SEED"`
	QueueMaxSize       int    `long:"queue-max-size" description:"queue max size" default:"100" env:"QONFORM_QUEUE_MAX_SIZE"`
	ReportPath         string `long:"report-path" description:"report file path, empty writes the report to standard output only" env:"QONFORM_REPORT_PATH"`
}
