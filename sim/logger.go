package sim

import "github.com/sirupsen/logrus"

// log 仿真模块的日志记录器
var log = logrus.WithField("module", "sim")
