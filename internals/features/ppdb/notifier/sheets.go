package notifier

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/ppdb/model"
	"sekolahku_backend/internals/helpers/dbtime"
)

// Sheets menambahkan satu baris per pendaftar ke spreadsheet panitia.
type Sheets struct {
	srv           *sheetsv4.Service
	spreadsheetID string
	rng           string
}

func NewSheets(ctx context.Context, credentialsFile, spreadsheetID, rng string) (*Sheets, error) {
	if _, err := os.Stat(credentialsFile); err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}
	if spreadsheetID == "" {
		return nil, fmt.Errorf("GOOGLE_SHEETS_ID belum diset")
	}
	if rng == "" {
		rng = "PPDB!A:Z"
	}
	srv, err := sheetsv4.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
	if err != nil {
		return nil, err
	}
	return &Sheets{srv: srv, spreadsheetID: spreadsheetID, rng: rng}, nil
}

// SheetRow: urutan kolom sama dengan header di spreadsheet.
func SheetRow(r *model.RegistrationModel) []interface{} {
	return []interface{}{
		dbtime.ToSchoolTime(r.CreatedAt).Format("2006-01-02 15:04:05"),
		r.ID.String(),
		r.FullName,
		r.NISN,
		r.NIK,
		r.Gender,
		r.BirthPlace,
		r.BirthDate.Format("2006-01-02"),
		r.Phone,
		deref(r.Email, ""),
		deref(r.PreviousSchool, ""),
		constants.PPDBStatusLabels[r.Status],
	}
}

func (s *Sheets) NotifySubmitted(ctx context.Context, r *model.RegistrationModel) error {
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{SheetRow(r)}}
	_, err := s.srv.Spreadsheets.Values.Append(s.spreadsheetID, s.rng, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}
