package auth

import (
	"testing"

	"github.com/julianstephens/leitstand/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func TestDefaults(t *testing.T) {
	tests := []struct {
		role       Role
		area       Area
		view, edit bool
	}{
		{RoleAdmin, AreaNotices, true, true},
		{RoleAdmin, AreaServiceMessages, true, true},
		{RoleTrafficManager, AreaAbsences, true, true},
		{RoleTrafficManager, AreaNotices, false, false},
		{RoleSupervision, AreaNotices, true, false},
		{RoleSupervision, AreaRoadworks, true, false},
		{RoleHumanResources, AreaAbsences, true, false},
		{RoleUser, AreaNotices, false, false},
		{RoleReadonly, AreaTrainings, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.area), func(t *testing.T) {
			p := Defaults(tt.role)
			if p.CanView(tt.area) != tt.view || p.CanEdit(tt.area) != tt.edit {
				t.Errorf("%s on %s = view %v edit %v, want view %v edit %v",
					tt.role, tt.area, p.CanView(tt.area), p.CanEdit(tt.area), tt.view, tt.edit)
			}
		})
	}

	if Defaults("gast") != nil {
		t.Error("Defaults(unknown) should be nil")
	}
}

func TestMerge(t *testing.T) {
	p := Merge(RoleUser, map[string]models.AreaPermission{
		"absences": {Edit: boolPtr(true)},
		"todos":    {View: boolPtr(false)},
		// notices is not part of the base grants and stays hidden
		"notices": {View: boolPtr(true)},
	})

	if !p.CanEdit(AreaAbsences) || !p.CanView(AreaAbsences) {
		t.Error("override should grant edit on absences and keep view")
	}
	if p.CanView(AreaTodos) {
		t.Error("override should revoke view on todos")
	}
	if p.CanView(AreaNotices) {
		t.Error("override must not add areas missing from the base grants")
	}
}

func TestMergeUnknownRoleFallsBackToReadonly(t *testing.T) {
	p := Merge("praktikant", nil)
	if !p.CanView(AreaRoadworks) || p.CanEdit(AreaRoadworks) {
		t.Errorf("unknown role permissions = %+v, want readonly", p)
	}

	// Merge must not leak overrides into the shared defaults
	_ = Merge(RoleReadonly, map[string]models.AreaPermission{"roadworks": {Edit: boolPtr(true)}})
	if Defaults(RoleReadonly).CanEdit(AreaRoadworks) {
		t.Error("Merge() modified the default table")
	}
}

func TestAreaFor(t *testing.T) {
	if a, ok := AreaFor(models.CollectionCharterTrips); !ok || a != AreaCharter {
		t.Errorf("AreaFor(charterTrips) = %q, %v", a, ok)
	}
	if _, ok := AreaFor(models.CollectionUsers); ok {
		t.Error("users must not map to an area")
	}
	for _, c := range models.RecordCollections {
		if _, ok := AreaFor(c); !ok {
			t.Errorf("collection %s has no area", c)
		}
	}
}

func TestAssistantAccess(t *testing.T) {
	if !CanUseAssistant(RoleAdmin) {
		t.Error("admin must use the assistant")
	}
	if CanUseAssistant(RoleTrafficManager) {
		t.Error("verkehrsleiter must not use the assistant")
	}
	if !RoleSupervision.IsKnown() || Role("gast").IsKnown() {
		t.Error("IsKnown() mismatch")
	}
}

func TestPassword(t *testing.T) {
	if _, err := HashPassword("kurz"); err == nil {
		t.Error("HashPassword() should reject short passwords")
	}

	hash, err := HashPassword("fahrdienst-2024")
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}
	if err := CheckPassword(hash, "fahrdienst-2024"); err != nil {
		t.Errorf("CheckPassword() with correct password failed: %v", err)
	}
	if err := CheckPassword(hash, "falsch"); err != ErrInvalidCredentials {
		t.Errorf("CheckPassword() with wrong password = %v, want ErrInvalidCredentials", err)
	}
}
