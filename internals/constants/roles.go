package constants

import "fmt"

const (
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// Capability adalah satuan izin yang dicek oleh middleware, bukan nama role.
type Capability string

const (
	CapContentManage    Capability = "content.manage"
	CapMediaUpload      Capability = "media.upload"
	CapPPDBRead         Capability = "ppdb.read"
	CapPPDBUpdateStatus Capability = "ppdb.update_status"
	CapPPDBExport       Capability = "ppdb.export"
	CapUsersManage      Capability = "users.manage"
	CapStorageBrowse    Capability = "storage.browse"
)

var adminCapabilities = []Capability{
	CapContentManage,
	CapMediaUpload,
	CapPPDBRead,
	CapPPDBUpdateStatus,
	CapPPDBExport,
}

// RoleCapabilities: satu-satunya sumber kebenaran role → izin.
var RoleCapabilities = map[string][]Capability{
	RoleAdmin:      adminCapabilities,
	RoleSuperadmin: append(append([]Capability{}, adminCapabilities...), CapUsersManage, CapStorageBrowse),
}

var AllRoles = []string{RoleAdmin, RoleSuperadmin}

func IsValidRole(role string) bool {
	_, ok := RoleCapabilities[role]
	return ok
}

// HasCapability: role tak dikenal tidak punya izin apa pun.
func HasCapability(role string, cap Capability) bool {
	for _, c := range RoleCapabilities[role] {
		if c == cap {
			return true
		}
	}
	return false
}

// RolesWith mengembalikan semua role yang memegang capability tertentu.
func RolesWith(cap Capability) []string {
	var out []string
	for _, r := range AllRoles {
		if HasCapability(r, cap) {
			out = append(out, r)
		}
	}
	return out
}

const ErrCapabilityDenied = "Akses ditolak: fitur %s tidak tersedia untuk role Anda."

func CapabilityError(cap Capability) string {
	return fmt.Sprintf(ErrCapabilityDenied, cap)
}
