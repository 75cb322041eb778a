package core

type NonSecretConf struct {
	DevMode            bool
	DisableStdoutLog   bool
	EnableFileLog      bool
	LogDir             string
	LogLevel           string
	LogRotationMaxDays int
	DeviceSettingPath  string
	Shots              int
	Seed               int64
	QueueMaxSize       int
	ReportPath         string
}

type Info struct {
	Conf *NonSecretConf
}

var CurrentInfo *Info

func SetInfo(c *Conf) {
	conf := &NonSecretConf{
		DevMode:            c.DevMode,
		DisableStdoutLog:   c.DisableStdoutLog,
		EnableFileLog:      c.EnableFileLog,
		LogDir:             c.LogDir,
		LogLevel:           c.LogLevel,
		LogRotationMaxDays: c.LogRotationMaxDays,
		DeviceSettingPath:  c.DeviceSettingPath,
		Shots:              c.Shots,
		Seed:               c.Seed,
		QueueMaxSize:       c.QueueMaxSize,
		ReportPath:         c.ReportPath,
	}

	CurrentInfo = &Info{
		Conf: conf,
	}
}
