package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/features/ppdb/dto"
	"sekolahku_backend/internals/features/ppdb/service"
	helper "sekolahku_backend/internals/helpers"
)

type PPDBController struct {
	Svc            *service.Service
	VAPIDPublicKey string
}

func NewPPDBController(svc *service.Service, vapidPublic string) *PPDBController {
	return &PPDBController{Svc: svc, VAPIDPublicKey: vapidPublic}
}

/* =========================================================
   PUBLIK
========================================================= */

// POST /api/ppdb
func (ctl *PPDBController) Submit(c *fiber.Ctx) error {
	var req dto.SubmitRegistrationRequest
	if err := helper.BodyParse(c, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.SubmitRegistration(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Pendaftaran berhasil dikirim", fiber.Map{"id": m.ID})
}

// GET /api/ppdb/by-nisn?nisn=  (NIK juga diterima)
func (ctl *PPDBController) ByNISN(c *fiber.Ctx) error {
	m, err := ctl.Svc.LookupByIdentifier(c.UserContext(), identifier(c))
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "", dto.ToRegistrationDTO(m))
}

// GET /api/ppdb/pdf?nisn=
func (ctl *PPDBController) ReceiptPDF(c *fiber.Ctx) error {
	data, m, err := ctl.Svc.GenerateReceiptPDF(c.UserContext(), identifier(c))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="bukti-pendaftaran-`+m.NISN+`.pdf"`)
	return c.Send(data)
}

func identifier(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Query("nisn")); v != "" {
		return v
	}
	return strings.TrimSpace(c.Query("nik"))
}

// POST /api/push/subscribe
func (ctl *PPDBController) Subscribe(c *fiber.Ctx) error {
	var req dto.PushSubscribeRequest
	if err := helper.BodyParse(c, &req); err != nil {
		return err
	}
	if err := ctl.Svc.SubscribeToPush(c.UserContext(), req, c.Get(fiber.HeaderUserAgent)); err != nil {
		return err
	}
	return helper.JsonOK(c, "Notifikasi diaktifkan", nil)
}

// GET /api/push/vapid-public-key
func (ctl *PPDBController) VAPIDKey(c *fiber.Ctx) error {
	if ctl.VAPIDPublicKey == "" {
		return helper.NotFound("Push notification belum dikonfigurasi")
	}
	return helper.JsonOK(c, "", fiber.Map{"publicKey": ctl.VAPIDPublicKey})
}

/* =========================================================
   ADMIN
========================================================= */

// GET /api/ppdb?status=&q=&page=&pageSize=
func (ctl *PPDBController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, helper.AdminOpts)
	rows, total, err := ctl.Svc.List(c.UserContext(), dto.ListQuery{
		Status: strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		Q:      c.Query("q"),
		Paging: p,
	})
	if err != nil {
		return err
	}
	return helper.JsonList(c, dto.ToRegistrationDTOs(rows), total, p)
}

// GET /api/ppdb/:id
func (ctl *PPDBController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "", dto.ToRegistrationDTO(m))
}

// PUT /api/ppdb/:id  {status, message}
func (ctl *PPDBController) UpdateStatus(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := helper.BodyParse(c, &req); err != nil {
		return err
	}
	m, err := ctl.Svc.UpdateStatus(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Status pendaftaran diperbarui", dto.ToRegistrationDTO(m))
}

// GET /api/ppdb/export?status=
func (ctl *PPDBController) Export(c *fiber.Ctx) error {
	buf, name, err := ctl.Svc.Export(c.UserContext(), strings.ToUpper(strings.TrimSpace(c.Query("status"))))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(buf.Bytes())
}

/* =========================================================
   PEMBAYARAN
========================================================= */

// POST /api/ppdb/:id/payment
func (ctl *PPDBController) CreatePayment(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	out, err := ctl.Svc.CreatePayment(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Transaksi pembayaran dibuat", out)
}

// POST /api/ppdb/payment/notification (dipanggil Midtrans)
func (ctl *PPDBController) PaymentNotification(c *fiber.Ctx) error {
	res, err := ctl.Svc.HandleNotification(c.UserContext(), c.Body())
	if err != nil {
		return err
	}
	return c.JSON(res)
}
