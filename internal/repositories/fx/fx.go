package fx

import (
	"github.com/orgball2608/ledgergram/internal/repositories/cursor"
	"github.com/orgball2608/ledgergram/internal/repositories/tip"
	"github.com/orgball2608/ledgergram/internal/repositories/userdirectory"
	"go.uber.org/fx"
)

var Module = fx.Options(
	userdirectory.Module,
	tip.Module,
	cursor.Module,
)
