package logs_test

import (
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/scaffoldkit/scaffold/logs"
	"github.com/stretchr/testify/suite"
)

type (
	FactoryTestSuite struct {
		suite.Suite
		lines []string
	}

	Planner struct{}
)

func (suite *FactoryTestSuite) SetupTest() {
	suite.lines = nil
}

func (suite *FactoryTestSuite) factory(config ...func(*logs.Factory)) *logs.Factory {
	root := funcr.New(func(prefix, args string) {
		suite.lines = append(suite.lines, prefix+" "+args)
	}, funcr.Options{Verbosity: 1})
	return logs.NewFactory(root, config...)
}

func (suite *FactoryTestSuite) TestFor() {
	suite.Run("Named By Type", func() {
		suite.factory().For(&Planner{}).Info("planned")
		suite.Len(suite.lines, 1)
		suite.True(strings.HasPrefix(suite.lines[0], "*logs_test.Planner"))
	})

	suite.Run("Root", func() {
		suite.lines = nil
		suite.factory().For(nil).Info("root")
		suite.Len(suite.lines, 1)
		suite.Contains(suite.lines[0], `"msg"="root"`)
	})
}

func (suite *FactoryTestSuite) TestDetail() {
	suite.Run("Enabled", func() {
		suite.lines = nil
		suite.factory(logs.Verbosity(1)).Detail(Planner{}).Info("detail")
		suite.Len(suite.lines, 1)
		suite.Contains(suite.lines[0], `"level"=1`)
	})

	suite.Run("Suppressed", func() {
		suite.lines = nil
		suite.factory(logs.Verbosity(2)).Detail(Planner{}).Info("detail")
		suite.Empty(suite.lines)
	})

	suite.Run("Discard", func() {
		suite.lines = nil
		logs.Discard().For(Planner{}).Info("dropped")
		suite.Empty(suite.lines)
	})
}

func TestFactoryTestSuite(t *testing.T) {
	suite.Run(t, new(FactoryTestSuite))
}
