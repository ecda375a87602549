package controller

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/alimikegami/point-of-sales/admin-console/internal/domain"
	"github.com/alimikegami/point-of-sales/admin-console/internal/dto"
	"github.com/alimikegami/point-of-sales/admin-console/internal/safeguard"
	"github.com/alimikegami/point-of-sales/admin-console/internal/service"
	"github.com/alimikegami/point-of-sales/admin-console/pkg/errs"
	"github.com/alimikegami/point-of-sales/admin-console/pkg/response"
)

type AdminController struct {
	service service.AdminService
}

func CreateAdminController(g *echo.Group, service service.AdminService) {
	c := AdminController{
		service: service,
	}

	g.GET("/dashboard", c.GetDashboard)
	g.POST("/dashboard/refresh", c.RefreshDashboard)

	g.PATCH("/users/:id/status", c.ToggleUserStatus)
	g.PATCH("/products/:id/status", c.ToggleProductStatus)
	g.DELETE("/products/:id", c.DeleteProduct)

	g.POST("/authoring", c.StartAuthoring)
	g.GET("/authoring", c.GetAuthoring)
	g.DELETE("/authoring", c.CancelAuthoring)
	g.PUT("/authoring/fields", c.UpdateFields)
	g.PUT("/authoring/media/gallery", c.SelectGalleryItem)
	g.PUT("/authoring/media/url", c.SelectMediaURL)
	g.POST("/authoring/media/images", c.AddImages)
	g.PUT("/authoring/media/video", c.SetVideo)
	g.DELETE("/authoring/media", c.ClearMedia)
	g.GET("/authoring/previews/:id", c.GetPreview)
	g.POST("/authoring/submit", c.SubmitProduct)
	g.GET("/gallery", c.GetGalleryItems)

	g.GET("/orders/:orderId/invoice", c.DownloadInvoice)
	g.GET("/orders/export", c.ExportOrders)
	g.POST("/logout", c.Logout)
}

func (c *AdminController) GetDashboard(e echo.Context) error {
	data, err := c.service.Dashboard()
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *AdminController) RefreshDashboard(e echo.Context) error {
	err := c.service.RefreshDashboard(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return c.GetDashboard(e)
}

func (c *AdminController) ToggleUserStatus(e echo.Context) error {
	payload := dto.StatusRequest{}
	if err := bindOptional(e, &payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "ToggleUserStatus").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient)
	}

	err := c.service.ToggleUserStatus(e.Request().Context(), e.Param("id"), payload.Active)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "User status updated", nil)
}

func (c *AdminController) ToggleProductStatus(e echo.Context) error {
	payload := dto.StatusRequest{}
	if err := bindOptional(e, &payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "ToggleProductStatus").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient)
	}

	err := c.service.ToggleProductStatus(e.Request().Context(), e.Param("id"), payload.Active)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "Product status updated", nil)
}

func (c *AdminController) DeleteProduct(e echo.Context) error {
	err := c.service.DeleteProduct(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "Product deleted", nil)
}

func (c *AdminController) StartAuthoring(e echo.Context) error {
	return authoringResult(e, c.service.StartAuthoring)
}

func (c *AdminController) GetAuthoring(e echo.Context) error {
	return authoringResult(e, c.service.Authoring)
}

func (c *AdminController) CancelAuthoring(e echo.Context) error {
	if err := c.service.CancelAuthoring(); err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *AdminController) UpdateFields(e echo.Context) error {
	payload := dto.AuthoringFieldsRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "UpdateFields").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient)
	}

	return authoringResult(e, func() (dto.AuthoringResponse, error) {
		return c.service.UpdateAuthoringFields(payload)
	})
}

func (c *AdminController) SelectGalleryItem(e echo.Context) error {
	payload := dto.GallerySelectionRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "SelectGalleryItem").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient)
	}

	return authoringResult(e, func() (dto.AuthoringResponse, error) {
		return c.service.SelectGalleryItem(payload)
	})
}

func (c *AdminController) SelectMediaURL(e echo.Context) error {
	payload := dto.URLSelectionRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "SelectMediaURL").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient)
	}

	return authoringResult(e, func() (dto.AuthoringResponse, error) {
		return c.service.SelectMediaURL(payload)
	})
}

func (c *AdminController) AddImages(e echo.Context) error {
	form, err := e.MultipartForm()
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddImages").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient)
	}

	files, err := readBlobs(form.File["images"])
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddImages").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient)
	}

	return authoringResult(e, func() (dto.AuthoringResponse, error) {
		return c.service.AddUploadedImages(files)
	})
}

func (c *AdminController) SetVideo(e echo.Context) error {
	header, err := e.FormFile("video")
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "SetVideo").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient)
	}

	files, err := readBlobs([]*multipart.FileHeader{header})
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "SetVideo").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient)
	}

	return authoringResult(e, func() (dto.AuthoringResponse, error) {
		return c.service.SetUploadedVideo(files[0])
	})
}

func (c *AdminController) ClearMedia(e echo.Context) error {
	return authoringResult(e, c.service.ClearMedia)
}

func (c *AdminController) GetPreview(e echo.Context) error {
	blob, err := c.service.Preview(e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	contentType := safeguard.DetectContentType(blob)
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return e.Blob(http.StatusOK, contentType, blob.Data)
}

func (c *AdminController) SubmitProduct(e echo.Context) error {
	err := c.service.SubmitProduct(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "Product added", nil)
}

func (c *AdminController) GetGalleryItems(e echo.Context) error {
	items := c.service.GalleryItems(domain.Category(e.QueryParam("category")))

	return response.WriteSuccessResponse(e, "", items)
}

func (c *AdminController) DownloadInvoice(e echo.Context) error {
	blob, err := c.service.DownloadInvoice(e.Request().Context(), e.Param("orderId"))
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return attachment(e, blob)
}

func (c *AdminController) ExportOrders(e echo.Context) error {
	blob, err := c.service.ExportOrders()
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return attachment(e, blob)
}

func (c *AdminController) Logout(e echo.Context) error {
	if err := c.service.Logout(e.Request().Context()); err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "Logged out", nil)
}

func authoringResult(e echo.Context, fn func() (dto.AuthoringResponse, error)) error {
	data, err := fn()
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "", data)
}

// bindOptional binds a JSON body when one was sent.
func bindOptional(e echo.Context, v interface{}) error {
	if e.Request().ContentLength == 0 {
		return nil
	}
	return e.Bind(v)
}

func attachment(e echo.Context, blob domain.Blob) error {
	e.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", blob.Name))
	return e.Blob(http.StatusOK, blob.ContentType, blob.Data)
}

func readBlobs(headers []*multipart.FileHeader) ([]domain.Blob, error) {
	blobs := make([]domain.Blob, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		blobs = append(blobs, domain.Blob{
			Name:        h.Filename,
			ContentType: h.Header.Get(echo.HeaderContentType),
			Data:        data,
		})
	}
	return blobs, nil
}
