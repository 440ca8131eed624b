package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/ppdb/model"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/dbtime"
)

// GenerateReceiptPDF: bukti pendaftaran A4 untuk NISN/NIK yang diminta.
func (s *Service) GenerateReceiptPDF(ctx context.Context, ident string) ([]byte, *model.RegistrationModel, error) {
	m, err := s.LookupByIdentifier(ctx, ident)
	if err != nil {
		return nil, nil, err
	}
	data, err := RenderReceipt(s.SchoolName, m, time.Now())
	if err != nil {
		return nil, nil, helper.Upstream(err, "render receipt pdf")
	}
	return data, m, nil
}

func RenderReceipt(school string, m *model.RegistrationModel, printedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bukti Pendaftaran PPDB", false)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// kop
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, tr(school), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Bukti Pendaftaran Peserta Didik Baru", "", 1, "C", false, 0, "")
	pdf.Ln(2)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "No. Pendaftaran: "+m.ID.String(), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	rows := [][2]string{
		{"Nama Lengkap", m.FullName},
		{"NIK", m.NIK},
		{"NISN", m.NISN},
		{"Tempat, Tanggal Lahir", fmt.Sprintf("%s, %s", m.BirthPlace, m.BirthDate.Format("02-01-2006"))},
		{"Jenis Kelamin", genderLabel(m.Gender)},
		{"Alamat", m.Address},
		{"Nama Ayah", m.FatherName},
		{"Nama Ibu", m.MotherName},
		{"No. Telepon", m.Phone},
		{"Asal Sekolah", strOr(m.PreviousSchool, "-")},
		{"Tanggal Daftar", m.CreatedAt.In(dbtime.Location()).Format("02-01-2006 15:04 MST")},
	}
	for _, r := range rows {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(55, 7, tr(r[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(5, 7, ":", "", 0, "L", false, 0, "")
		pdf.MultiCell(0, 7, tr(r[1]), "", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(235, 240, 250)
	label := constants.PPDBStatusLabels[m.Status]
	pdf.CellFormat(0, 10, tr("Status: "+label), "1", 1, "C", true, 0, "")
	if m.Message != nil && *m.Message != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, tr("Catatan panitia: "+*m.Message), "", "L", false)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, "Dicetak: "+printedAt.In(dbtime.Location()).Format("02-01-2006 15:04 MST"), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 5, tr("Simpan bukti ini untuk cek status pendaftaran dengan NISN Anda."), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func genderLabel(g string) string {
	switch g {
	case "L":
		return "Laki-laki"
	case "P":
		return "Perempuan"
	}
	return g
}

func strOr(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
