package rbac

import "testing"

func TestCanManageStrictOrder(t *testing.T) {
	ordered := []Role{RoleAdministrator, RoleSuperAdmin, RoleSubAdmin, RoleUser}

	for i, actor := range ordered {
		for j, target := range ordered {
			got := CanManage(actor, target)
			want := i < j
			if got != want {
				t.Errorf("CanManage(%s, %s) = %v, want %v", actor, target, got, want)
			}
		}
	}
}

func TestCanManageSelfAlwaysFalse(t *testing.T) {
	for _, role := range []Role{RoleAdministrator, RoleSuperAdmin, RoleSubAdmin, RoleUser} {
		if CanManage(role, role) {
			t.Errorf("CanManage(%s, %s) must be false", role, role)
		}
	}
}

func TestAdministratorNeverManageable(t *testing.T) {
	for _, role := range []Role{RoleAdministrator, RoleSuperAdmin, RoleSubAdmin, RoleUser} {
		if CanManage(role, RoleAdministrator) {
			t.Errorf("no role may manage an administrator, got true for %s", role)
		}
	}
}

func TestCanManageUnknownRoleFailsClosed(t *testing.T) {
	if CanManage(RoleAdministrator, Role("owner")) {
		t.Error("unknown target role must not be manageable")
	}
	if CanManage(Role("owner"), RoleUser) {
		t.Error("unknown actor role must not manage anyone")
	}
	if CanManage(Role(""), Role("")) {
		t.Error("empty roles must compare as unmanageable")
	}
}
