package constants

// Status pendaftaran PPDB (nilai wire dipertahankan dalam Bahasa Indonesia).
const (
	PPDBStatusVerification = "VERIFIKASI"
	PPDBStatusFilesValid   = "BERKAS_VALID"
	PPDBStatusAccepted     = "DITERIMA"
	PPDBStatusRejected     = "DITOLAK"
)

var PPDBStatuses = []string{
	PPDBStatusVerification,
	PPDBStatusFilesValid,
	PPDBStatusAccepted,
	PPDBStatusRejected,
}

var PPDBStatusLabels = map[string]string{
	PPDBStatusVerification: "Sedang Diverifikasi",
	PPDBStatusFilesValid:   "Berkas Valid",
	PPDBStatusAccepted:     "Diterima",
	PPDBStatusRejected:     "Tidak Diterima",
}

func IsValidPPDBStatus(s string) bool {
	_, ok := PPDBStatusLabels[s]
	return ok
}

// Status pembayaran biaya pendaftaran.
const (
	PaymentUnpaid   = "UNPAID"
	PaymentPending  = "PENDING"
	PaymentPaid     = "PAID"
	PaymentFailed   = "FAILED"
	PaymentCanceled = "CANCELED"
	PaymentExpired  = "EXPIRED"
	PaymentRefunded = "REFUNDED"
)

// Jenis entitas yang memiliki media.
const (
	EntityNews        = "news"
	EntityAchievement = "achievement"
	EntityGallery     = "gallery"
	EntityPublication = "publication"
)

// EntityTables memetakan entity_type ke tabel induknya.
var EntityTables = map[string]string{
	EntityNews:        "news",
	EntityAchievement: "achievements",
	EntityGallery:     "galleries",
	EntityPublication: "publications",
}
