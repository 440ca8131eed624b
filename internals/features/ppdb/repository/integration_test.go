//go:build integration

package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/databases/dbtest"
	"sekolahku_backend/internals/features/ppdb/dto"
	"sekolahku_backend/internals/features/ppdb/model"
	"sekolahku_backend/internals/features/ppdb/repository"
	helper "sekolahku_backend/internals/helpers"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	testDB = dbtest.Open()
	os.Exit(m.Run())
}

func setup(t *testing.T) repository.Repository {
	t.Helper()
	dbtest.Truncate(t, testDB, "payment_events", "payment_orders", "push_subscriptions", "ppdb_registrations")
	return repository.New(testDB)
}

func registration(nik, nisn, name string) *model.RegistrationModel {
	return &model.RegistrationModel{
		FullName:      name,
		NIK:           nik,
		NISN:          nisn,
		BirthPlace:    "Bogor",
		BirthDate:     time.Date(2015, 7, 1, 0, 0, 0, 0, time.UTC),
		Gender:        "L",
		Address:       "Jl. Melati 1",
		FatherName:    "Ayah",
		MotherName:    "Ibu",
		Phone:         "0812",
		Status:        constants.PPDBStatusVerification,
		PaymentStatus: constants.PaymentUnpaid,
	}
}

func TestCreateRejectsDuplicateNIKAndNISN(t *testing.T) {
	repo := setup(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, registration("3201000000000001", "0000000001", "Ani")))

	err := repo.Create(ctx, registration("3201000000000001", "0000000002", "Budi"))
	assert.True(t, helper.IsUniqueViolation(err), "NIK ganda")

	err = repo.Create(ctx, registration("3201000000000003", "0000000001", "Citra"))
	assert.True(t, helper.IsUniqueViolation(err), "NISN ganda")
}

func TestFindByIdentifierAndStatus(t *testing.T) {
	repo := setup(t)
	ctx := context.Background()
	r := registration("3201000000000001", "0000000001", "Ani")
	require.NoError(t, repo.Create(ctx, r))

	got, err := repo.FindByIdentifier(ctx, "0000000001")
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
	got, err = repo.FindByIdentifier(ctx, "3201000000000001")
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)

	_, err = repo.FindByIdentifier(ctx, "9999999999")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	msg := "Lengkapi akta"
	upd, err := repo.UpdateStatus(ctx, r.ID, constants.PPDBStatusFilesValid, &msg)
	require.NoError(t, err)
	assert.Equal(t, constants.PPDBStatusFilesValid, upd.Status)
	assert.Equal(t, "Lengkapi akta", *upd.Message)

	_, err = repo.UpdateStatus(ctx, uuid.New(), constants.PPDBStatusAccepted, nil)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestListFiltersAndSearch(t *testing.T) {
	repo := setup(t)
	ctx := context.Background()
	a := registration("3201000000000001", "0000000001", "Ani Lestari")
	b := registration("3201000000000002", "0000000002", "Budi Santoso")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	_, err := repo.UpdateStatus(ctx, b.ID, constants.PPDBStatusAccepted, nil)
	require.NoError(t, err)

	rows, total, err := repo.List(ctx, dto.ListQuery{Paging: helper.Paging{Page: 1, PageSize: 10}})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, rows, 2)

	rows, total, err = repo.List(ctx, dto.ListQuery{Status: constants.PPDBStatusAccepted, Paging: helper.Paging{Page: 1, PageSize: 10}})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, b.ID, rows[0].ID)

	_, total, err = repo.List(ctx, dto.ListQuery{Q: "lestari", Paging: helper.Paging{Page: 1, PageSize: 10}})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	all, err := repo.ListAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPaymentFlow(t *testing.T) {
	repo := setup(t)
	ctx := context.Background()
	r := registration("3201000000000001", "0000000001", "Ani")
	require.NoError(t, repo.Create(ctx, r))

	require.NoError(t, repo.SetPayment(ctx, r.ID, "PPDB-0000000001-1", constants.PaymentPending))
	got, err := repo.FindByOrderID(ctx, "PPDB-0000000001-1")
	require.NoError(t, err)
	assert.Equal(t, constants.PaymentPending, got.PaymentStatus)

	// order kedua menggantikan order aktif, order pertama tetap bisa dicari
	require.NoError(t, repo.SetPayment(ctx, r.ID, "PPDB-0000000001-2", constants.PaymentPending))
	got, err = repo.FindByOrderID(ctx, "PPDB-0000000001-1")
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, "PPDB-0000000001-2", *got.PaymentOrderID)

	err = repo.SetPayment(ctx, r.ID, "PPDB-0000000001-2", constants.PaymentPending)
	assert.True(t, helper.IsUniqueViolation(err), "order_id ganda")

	require.NoError(t, repo.UpdatePaymentStatus(ctx, r.ID, "PPDB-0000000001-1", constants.PaymentPaid))
	require.NoError(t, repo.LogPaymentEvent(ctx, &model.PaymentEventModel{
		RegistrationID: &r.ID,
		OrderID:        "PPDB-0000000001-1",
		RawPayload:     datatypes.JSON(`{"transaction_status":"settlement"}`),
	}))
	require.NoError(t, repo.LogPaymentEvent(ctx, &model.PaymentEventModel{
		OrderID:    "tidak-dikenal",
		RawPayload: datatypes.JSON(`{}`),
	}))

	var n int64
	require.NoError(t, testDB.Model(&model.PaymentEventModel{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)

	got, err = repo.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.PaymentPaid, got.PaymentStatus)
	assert.Equal(t, "PPDB-0000000001-1", *got.PaymentOrderID)

	assert.True(t, errors.Is(repo.UpdatePaymentStatus(ctx, uuid.New(), "x", constants.PaymentPaid), gorm.ErrRecordNotFound))
}

func TestPushSubscriptions(t *testing.T) {
	repo := setup(t)
	ctx := context.Background()
	r := registration("3201000000000001", "0000000001", "Ani")
	require.NoError(t, repo.Create(ctx, r))

	sub := func() *model.PushSubscriptionModel {
		return &model.PushSubscriptionModel{
			RegistrationID: r.ID,
			Endpoint:       "https://push.example.com/abc",
			Keys:           datatypes.NewJSONType(model.PushKeys{P256dh: "p", Auth: "a"}),
		}
	}
	require.NoError(t, repo.UpsertPushSubscription(ctx, sub()))
	require.NoError(t, repo.UpsertPushSubscription(ctx, sub()), "endpoint sama di-upsert")

	active, err := repo.ActivePushSubscriptions(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)

	require.NoError(t, repo.DisablePushSubscription(ctx, active[0].ID, "push service 410"))
	active, err = repo.ActivePushSubscriptions(ctx, r.ID)
	require.NoError(t, err)
	assert.Empty(t, active)

	// subscribe ulang menghidupkan lagi
	require.NoError(t, repo.UpsertPushSubscription(ctx, sub()))
	active, err = repo.ActivePushSubscriptions(ctx, r.ID)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	require.NoError(t, repo.DisablePushSubscription(ctx, active[0].ID, "gone"))
	n, err := repo.PruneDisabledPush(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
