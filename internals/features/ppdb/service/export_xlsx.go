package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/ppdb/model"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/dbtime"
)

const exportSheet = "Pendaftar"

var exportHeader = []interface{}{
	"No", "Tanggal Daftar", "Nama Lengkap", "NIK", "NISN", "L/P", "Tempat Lahir", "Tanggal Lahir",
	"Alamat", "Nama Ayah", "Pekerjaan Ayah", "Nama Ibu", "Pekerjaan Ibu", "Telepon", "Email",
	"Asal Sekolah", "Status", "Catatan", "Pembayaran",
}

// Export menghasilkan XLSX seluruh pendaftar (opsional filter status).
func (s *Service) Export(ctx context.Context, status string) (*bytes.Buffer, string, error) {
	if status != "" && !constants.IsValidPPDBStatus(status) {
		return nil, "", helper.FieldError("status", "status tidak dikenal")
	}
	rows, err := s.Repo.ListAll(ctx, status)
	if err != nil {
		return nil, "", helper.Upstream(err, "export ppdb")
	}
	buf, err := BuildWorkbook(rows)
	if err != nil {
		return nil, "", helper.Upstream(err, "build xlsx")
	}
	name := fmt.Sprintf("ppdb-%s.xlsx", time.Now().In(dbtime.Location()).Format("20060102-1504"))
	return buf, name, nil
}

func BuildWorkbook(rows []model.RegistrationModel) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1F4E78"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeader))
	_ = f.SetCellStyle(exportSheet, "A1", lastCol+"1", headerStyle)
	_ = f.SetColWidth(exportSheet, "A", "A", 5)
	_ = f.SetColWidth(exportSheet, "B", lastCol, 18)
	_ = f.SetColWidth(exportSheet, "C", "C", 28)
	_ = f.SetColWidth(exportSheet, "I", "I", 40)

	for i := range rows {
		r := &rows[i]
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			i + 1,
			r.CreatedAt.In(dbtime.Location()).Format("2006-01-02 15:04"),
			r.FullName,
			r.NIK, // string biar nol di depan tidak hilang
			r.NISN,
			r.Gender,
			r.BirthPlace,
			r.BirthDate.Format("2006-01-02"),
			r.Address,
			r.FatherName,
			strOr(r.FatherOccupation, ""),
			r.MotherName,
			strOr(r.MotherOccupation, ""),
			r.Phone,
			strOr(r.Email, ""),
			strOr(r.PreviousSchool, ""),
			constants.PPDBStatusLabels[r.Status],
			strOr(r.Message, ""),
			r.PaymentStatus,
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	_ = f.AutoFilter(exportSheet, "A1:"+lastCol+"1", nil)

	return f.WriteToBuffer()
}
