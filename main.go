package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github/itish2003/growthvision/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logrus.WithError(err).Error("FATAL")
		os.Exit(1)
	}
}
