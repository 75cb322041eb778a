package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	flags "github.com/jessevdk/go-flags"
	"github.com/massn/envordot"
	"github.com/oklog/run"

	"github.com/qonform-team/qonform/core"
	"github.com/qonform-team/qonform/device"
	"github.com/qonform-team/qonform/log"
	"github.com/qonform-team/qonform/oracle"

	"go.uber.org/dig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	rotate "github.com/lestrrat-go/file-rotatelogs"
)

var versionByBuildFlag string
var parser *flags.Parser
var qonform *Qonform

func init() {
	if err := envordot.Load(false, ".env"); err != nil {
		fmt.Printf("Not found \".env\" file. Use only environment variables. Reason:%s\n", err.Error())
	} else {
		fmt.Println("Found \".env\" file. Environment variables are preferred, " +
			"but non-conflicting variables are those in the \".env\" file.")
	}
	qonform = &Qonform{}
	setParser(qonform)
}

type Qonform struct {
	DIContainerParameters *DIContainerParameters
	Conf                  *core.Conf
}

type DIContainerParameters struct {
	Device   string `long:"device" description:"device-type" default:"simulator" choice:"simulator" env:"QONFORM_DEVICE_TYPE"`
	Recorder string `long:"recorder" description:"recorder-type" default:"memory" choice:"memory" env:"QONFORM_RECORDER_TYPE"`
	Runner   string `long:"runner" description:"runner-type" default:"suite" env:"QONFORM_RUNNER_TYPE"`
}

func setParser(q *Qonform) {
	parser = flags.NewParser(q, flags.Default)
	parser.ShortDescription = "qonform"
	parser.LongDescription = "the gate-application conformance suite for quantum devices."
	parser.AddCommand("verify", "run the suite", "run every conformance case against the device under test", newVerifyCmd())
}

func parse() {
	if _, err := parser.Parse(); err != nil {
		code := 1
		if fe, ok := err.(*flags.Error); ok {
			if fe.Type == flags.ErrHelp {
				code = 0
			}
		}
		if code == 1 {
			fmt.Printf("failed to parse flags, because %s\n", err)
		}
		os.Exit(code)
	}
}

func (q *Qonform) provideDIContainer() (c *dig.Container, err error) {
	c = dig.New()
	err = nil
	err = c.Provide(func() (core.DeviceFactory, error) {
		switch q.DIContainerParameters.Device {
		case "simulator":
			return &device.Factory{}, nil
		default:
			return &device.Factory{}, fmt.Errorf("%s is an unknown device", q.DIContainerParameters.Device)
		}
	})
	if err != nil {
		return &dig.Container{}, err
	}
	err = c.Provide(func() (core.Runner, error) {
		switch q.DIContainerParameters.Runner {
		case "suite":
			return &oracle.SuiteRunner{}, nil
		default:
			return &oracle.SuiteRunner{}, fmt.Errorf("%s is an unknown runner", q.DIContainerParameters.Runner)
		}
	})
	if err != nil {
		return &dig.Container{}, err
	}
	err = c.Provide(func() (core.Recorder, error) {
		switch q.DIContainerParameters.Recorder {
		case "memory":
			return &core.MemoryRecorder{}, nil
		default:
			return &core.MemoryRecorder{}, fmt.Errorf("%s is an unknown recorder", q.DIContainerParameters.Recorder)
		}
	})
	if err != nil {
		return &dig.Container{}, err
	}
	return
}

func zapLogger(conf *core.Conf) (*zap.Logger, error) {
	var encoder zapcore.Encoder
	if conf.DevMode {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		c := zap.NewProductionEncoderConfig()
		c.EncodeTime = zapcore.ISO8601TimeEncoder //Not use UnixTime
		c.TimeKey = "timestamp"
		encoder = zapcore.NewJSONEncoder(c)
	}
	var level zap.AtomicLevel
	switch conf.LogLevel {
	case "debug":
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	cores := []zapcore.Core{}
	if conf.EnableFileLog {
		rotater, err := makeRotator(conf.LogDir, conf.LogRotationMaxDays)
		if err != nil {
			return &zap.Logger{}, err
		}
		syncer := zapcore.AddSync(rotater)
		rotateCore := zapcore.NewCore(
			encoder,
			syncer,
			level)
		cores = append(cores, rotateCore)
	}
	if !conf.DisableStdoutLog {
		debugCore := zapcore.NewCore(
			encoder,
			zapcore.Lock(os.Stdout),
			level)
		cores = append(cores, debugCore)
	}
	core := zapcore.NewTee(cores...)
	return zap.New(core, zap.AddCaller()), nil
}

func makeRotator(dirPath string, rotationMaxDays int) (*rotate.RotateLogs, error) {
	info, err := os.Stat(dirPath)
	if err != nil {
		return &rotate.RotateLogs{}, fmt.Errorf("directory:%s is not found", dirPath)
	}
	if info.Mode().Perm()&(1<<uint(7)) == 0 {
		return &rotate.RotateLogs{}, fmt.Errorf("%s is not a writable directory", dirPath)
	}
	rotator, err := rotate.New(
		filepath.Join(dirPath, "qonform-%Y-%m-%d.log"),
		rotate.WithMaxAge(time.Duration(rotationMaxDays)*24*time.Hour),
		rotate.WithRotationTime(time.Hour))
	if err != nil {
		return &rotate.RotateLogs{}, err
	}
	return rotator, nil
}

func main() {
	parse()
}

type verifyCmd struct{}

func newVerifyCmd() *verifyCmd {
	return &verifyCmd{}
}

func (c *verifyCmd) Execute(args []string) error {
	logger := setZap(qonform.Conf)
	defer logger.Sync()

	core.ResetSetting()
	registerSetting()
	zap.L().Debug("Registered setting")
	if err := core.ParseSettingFromPath(qonform.Conf.SettingPath); err != nil {
		zap.L().Error(fmt.Sprintf("failed to parse settings/reason:%s", err))
		return err
	}

	s := setupSystemComponents(qonform.Conf)
	defer s.TearDown()

	im := &core.ImplMaps{
		PeriodicTaskImplMap: core.PeriodicTaskImplMap{
			log.VersionLogTaskName: &log.VersionLogTaskImpl{},
			log.MetricsLogTaskName: &log.MetricsLogTaskImpl{},
		},
	}
	rc, err := core.NewRunContextWithSettingPath(qonform.Conf.SettingPath, im)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to setup run context/reason:%s", err.Error()))
		return err
	}

	core.SetInfo(qonform.Conf)

	zap.L().Debug("Setting up run-group")
	// The suite is a one-shot actor. When it returns, the run-group
	// interrupts the periodic tasks and the whole process winds down.
	var report *core.SuiteReport
	rc.Add(
		func() error {
			var runErr error
			report, runErr = s.RunSuite()
			return runErr
		},
		func(error) {},
	)
	if err := c.setupRunGroup(rc); err != nil {
		zap.L().Error(fmt.Sprintf("Failed to setup run group. Reason:%s", err))
		return err
	}

	if err := rc.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "execution error:%v\n", err)
		os.Exit(1)
	}
	if report == nil {
		return fmt.Errorf("no report was produced")
	}

	out := report.ToString()
	fmt.Println(out)
	if qonform.Conf.ReportPath != "" {
		if err := os.WriteFile(qonform.Conf.ReportPath, []byte(out+"\n"), 0644); err != nil {
			zap.L().Error(fmt.Sprintf("failed to write report to %s/reason:%s", qonform.Conf.ReportPath, err))
			return err
		}
		zap.L().Info(fmt.Sprintf("Wrote report to %s", qonform.Conf.ReportPath))
	}
	if !report.Clean() {
		zap.L().Error(fmt.Sprintf("Suite is not clean. failed:%d xpassed:%d", report.Failed, report.XPassed))
		os.Exit(1)
	}
	return nil
}

func (c *verifyCmd) setupRunGroup(rc *core.RunContext) error {
	rc.Add(
		run.SignalHandler(
			rc.Context,
			os.Interrupt))
	core.SetRunContext(rc)
	return nil
}

// TODO : move to log package
func setZap(conf *core.Conf) *zap.Logger {
	logger, err := zapLogger(conf)
	if err != nil {
		fmt.Printf("Failed to setup logger. Reason:%s\n", err)
		panic(err)
	}
	zap.ReplaceGlobals(logger)
	zap.L().Info("Starting logger")
	zap.L().Info(fmt.Sprintf("DevMode is %t", conf.DevMode))
	zap.L().Info(fmt.Sprintf("Log rotation max days is %d", conf.LogRotationMaxDays))
	return logger
}

func setupSystemComponents(conf *core.Conf) *core.SystemComponents {
	core.SetVersion(conf, versionByBuildFlag)
	zap.L().Debug(fmt.Sprintf("Providing DI Container with parameters %+v", qonform.DIContainerParameters))

	container, err := qonform.provideDIContainer()
	if err != nil {
		zap.L().Error(fmt.Sprintf("Failed to setting up DI-Container. Reason:%s", err.Error()))
		panic(err)
	}
	zap.L().Debug("Setting up System Components")
	s := core.NewSystemComponents(container)
	if err := s.Setup(conf); err != nil {
		zap.L().Error(fmt.Sprintf("Failed to setting up Container. Reason:%s", err.Error()))
		panic(err)
	}
	return s
}

func registerSetting() {
	core.RegisterSetting(core.ToleranceSettingName, core.NewToleranceSetting())
}
