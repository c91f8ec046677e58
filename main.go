package main

import (
	"flag"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eikden/traffic-lights-optimization/control"
	"github.com/eikden/traffic-lights-optimization/entity/intersection"
	"github.com/eikden/traffic-lights-optimization/entity/lane"
	"github.com/eikden/traffic-lights-optimization/network"
	"github.com/eikden/traffic-lights-optimization/sim"
	"github.com/eikden/traffic-lights-optimization/utils/config"
)

var (
	// 配置文件路径
	configPath = flag.String("config", "", "config file path")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "main")
)

// summarize 输出单路口仿真结果摘要
// 功能：记录路口终态的关键指标（终止相位、平均排队长度）
func summarize(i *intersection.Intersection) {
	lanes := i.Lanes()
	avgQueue := float64(lo.SumBy(lanes, func(l *lane.Lane) int { return l.Queue() })) / float64(len(lanes))
	log.Infof("simulation complete for %s after %d seconds", i.ID(), i.Time())
	log.Infof("final phase: %s, average queue length: %.2f vehicles", i.CurrentPhase().Name(), avgQueue)
}

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}

	// 获取配置
	if *configPath == "" {
		log.Panic("config file must be specified")
	}
	c, err := config.Load(*configPath)
	if err != nil {
		log.Panicf("config file load err: %v", err)
	}
	log.Infof("%+v", c)

	if c.Control.Corridor != nil {
		// 干线协调模式：所有路口在共享时钟上运行
		coordinator, err := network.NewCoordinatorFromConfig(*c.Control.Corridor)
		if err != nil {
			log.Panicf("coordinator init err: %v", err)
		}
		n, err := network.Run(c.Layouts, coordinator, network.OptionsFromControl(c.Control))
		if err != nil {
			log.Panicf("network simulation err: %v", err)
		}
		result := n.Export()
		log.Infof("network simulation complete after %d seconds, run %s, %d frames",
			n.Time(), result.RunID, len(result.Frames))
		for _, id := range n.IDs() {
			summarize(n.Get(id))
		}
	} else {
		// 独立模式：各路口相互独立并行运行
		results, err := sim.RunEach(
			c.Layouts,
			control.NewDefaultDemandResponsive,
			sim.OptionsFromControl(c.Control),
			c.Control.Seed,
		)
		if err != nil {
			log.Panicf("simulation err: %v", err)
		}
		for _, i := range results {
			summarize(i)
		}
	}
	log.Infof("engine complete")
}
