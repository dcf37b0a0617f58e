package globals

import (
	"github.com/sirupsen/logrus"

	"github.com/minepkg/assetguard/internals/cmdlog"
	"github.com/minepkg/assetguard/internals/ownhttp"
)

var (
	HTTPClient = ownhttp.New()
	Logger     = cmdlog.New()
	// Log receives the engine diagnostics
	Log = logrus.New()
)
