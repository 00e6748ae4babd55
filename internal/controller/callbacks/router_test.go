package callbacks

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/alerts"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/pills"
)

func sameFunc(a, b HandlerFunc) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		data string
		want HandlerFunc
	}{
		{common.PillsList, pills.HandleList},
		{common.PillView + "abc", pills.HandleView},
		{common.PillDelete + "abc", pills.HandleDelete},
		{common.PillDeleteConfirm + "abc", pills.HandleDeleteConfirm},
		{common.PillSetServing + "abc:2", pills.HandleSetServing},
		{common.AlertDeleteConfirm + "a1", alerts.HandleDeleteConfirm},
		{common.EditorTimesPerDay + "3", alerts.HandleTimesPerDay},
		{common.EditorSetTime + "0", alerts.HandleSetTime},
		{common.EditorDeleteTime + "0", alerts.HandleDeleteTime},
		{common.EditorSave, alerts.HandleSave},
	}
	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			got, ok := Lookup(tt.data)
			require.True(t, ok)
			assert.True(t, sameFunc(tt.want, got))
		})
	}

	_, ok := Lookup("unknown:1")
	assert.False(t, ok)
}

func TestPrefixesAreUnambiguous(t *testing.T) {
	t.Parallel()

	for i, a := range prefixed {
		for j, b := range prefixed {
			if i != j {
				assert.False(t, strings.HasPrefix(b.prefix, a.prefix), "%q shadows %q", a.prefix, b.prefix)
			}
		}
		_, clash := exact[a.prefix]
		assert.False(t, clash, a.prefix)
	}
}
