package cli

import "testing"

func TestAppContextClose_NilFields(t *testing.T) {
	a := &AppContext{}
	if err := a.Close(); err != nil {
		t.Errorf("Close() on empty context should not error, got: %v", err)
	}
}
