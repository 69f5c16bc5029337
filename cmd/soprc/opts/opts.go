package opts

import (
	"github.com/walteh/soprc/pkg/config"
	"github.com/walteh/soprc/pkg/log"
	"github.com/walteh/soprc/pkg/operation"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config    *config.Config
	Operation operation.Options
	Addr      string
	Output    string
	Console   *log.Logger
}
