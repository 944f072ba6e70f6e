// Package directory answers who holds the admin role. User management lives
// in another service; the admin list is configured at startup.
package directory

import (
	"context"
	"slices"
	"strings"

	"hubflow/internal/core/ports"
	"hubflow/internal/pkg/errs"
)

type StaticAdminDirectory struct {
	ids []string
}

var _ ports.AdminDirectory = (*StaticAdminDirectory)(nil)

// NewStaticAdminDirectory keeps the non-blank ids, trimmed and deduplicated,
// in the order given.
func NewStaticAdminDirectory(ids []string) (*StaticAdminDirectory, error) {
	clean := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || slices.Contains(clean, id) {
			continue
		}
		clean = append(clean, id)
	}
	if len(clean) == 0 {
		return nil, errs.NewValueIsRequiredError("admin ids")
	}
	return &StaticAdminDirectory{ids: clean}, nil
}

// ParseAdminIDs splits a comma separated list such as ADMIN_IDS.
func ParseAdminIDs(raw string) []string {
	return strings.Split(raw, ",")
}

func (d *StaticAdminDirectory) AdminIDs(_ context.Context) ([]string, error) {
	return slices.Clone(d.ids), nil
}
