package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shenikar/armguard_console/internal/models"
)

func TestBuildAlertView(t *testing.T) {
	list := []models.Alert{
		{ID: "1", Severity: models.SeverityCritical},
		{ID: "2", Read: true},
		{ID: "3"},
		{ID: "4", Read: true, Severity: models.SeverityCritical},
		{ID: "5"},
		{ID: "6"},
	}

	all := BuildAlertView(list, ParseAlertTab(""), 2, 0)
	assert.Equal(t, AlertTabAll, all.Tab)
	assert.Equal(t, AlertCounts{All: 6, Unread: 4, Read: 2, Critical: 2}, all.Counts)
	assert.Len(t, all.Page.Items, 2)

	unread := BuildAlertView(list, ParseAlertTab("UNREAD"), 1, 0)
	assert.Equal(t, 4, unread.Page.Total)
	assert.Equal(t, "1", unread.Page.Items[0].ID)

	read := BuildAlertView(list, ParseAlertTab("read"), 1, 10)
	assert.Equal(t, 2, read.Page.Total)
	assert.Equal(t, all.Counts, read.Counts)
}
