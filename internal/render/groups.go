package render

import (
	"strings"

	"github.com/sanglocn/us-daily/internal/models"
)

// Group is one displayed section: a group label, its navigation anchor, and
// the rows belonging to it.
type Group struct {
	Name   string
	Anchor string
	Rows   []models.SnapshotRow
}

// PartitionGroups splits rows into display groups in the fixed group order.
// Groups with no rows are omitted; rows whose group label is not in the
// fixed order do not appear in any section.
func PartitionGroups(rows []models.SnapshotRow) []Group {
	byGroup := make(map[string][]models.SnapshotRow)
	for _, row := range rows {
		byGroup[row.Group] = append(byGroup[row.Group], row)
	}

	groups := make([]Group, 0, len(models.GroupOrder))
	for _, name := range models.GroupOrder {
		members := byGroup[name]
		if len(members) == 0 {
			continue
		}
		groups = append(groups, Group{
			Name:   name,
			Anchor: GroupAnchor(name),
			Rows:   members,
		})
	}

	return groups
}

// GroupAnchor derives the navigation anchor for a group name.
func GroupAnchor(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
