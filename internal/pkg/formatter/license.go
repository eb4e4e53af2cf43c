package formatter

import (
	"fmt"
	"strings"

	"github.com/unidoc/unioffice/common/license"
)

// SetupDOCXLicense registers the unioffice metered key. unioffice refuses to
// save documents without one, so DOCX export is enabled only when this returns true.
func SetupDOCXLicense(apiKey string) (bool, error) {
	if strings.TrimSpace(apiKey) == "" {
		return false, nil
	}
	if err := license.SetMeteredKey(apiKey); err != nil {
		return false, fmt.Errorf("set unioffice metered key: %w", err)
	}
	return true, nil
}
