package export

import "errors"

// ErrNothingToExport нет активных alerts со слотами и днями
var ErrNothingToExport = errors.New("no active alerts to export")
