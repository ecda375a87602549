package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/alimikegami/point-of-sales/admin-console/internal/domain"
	"github.com/alimikegami/point-of-sales/admin-console/internal/dto"
	"github.com/alimikegami/point-of-sales/admin-console/pkg/errs"
	"github.com/alimikegami/point-of-sales/admin-console/pkg/httpclient"
)

type AdminRepositoryImpl struct {
	client  httpclient.Doer
	baseURL string
	auth    Authorizer
}

func CreateAdminRepository(client httpclient.Doer, baseURL string, auth Authorizer) AdminRepository {
	return &AdminRepositoryImpl{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		auth:    auth,
	}
}

func (r *AdminRepositoryImpl) GetStats(ctx context.Context) (data domain.Stats, err error) {
	resp, err := r.call(ctx, http.MethodGet, "/admin/stats", nil, "", "Failed to load stats")
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetStats").Msg("")
		return
	}

	env, err := decodeEnvelope(resp.Body, "Failed to load stats")
	if err != nil {
		return
	}

	// Some deployments return the stats object without the envelope.
	raw := env.Data
	if len(raw) == 0 || string(raw) == "null" {
		raw = resp.Body
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return data, nil
	}
	if err = json.Unmarshal(raw, &data); err != nil {
		return data, errs.Transport(string(resp.Body), err)
	}

	return data, nil
}

func (r *AdminRepositoryImpl) GetUsers(ctx context.Context) (data []domain.User, err error) {
	data, err = getList[domain.User](ctx, r, "/admin/users", "Failed to load users")
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetUsers").Msg("")
	}
	return
}

func (r *AdminRepositoryImpl) GetProducts(ctx context.Context) (data []domain.Product, err error) {
	data, err = getList[domain.Product](ctx, r, "/admin/items", "Failed to load products")
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
	}
	return
}

func (r *AdminRepositoryImpl) GetOrders(ctx context.Context) (data []domain.Order, err error) {
	data, err = getList[domain.Order](ctx, r, "/admin/orders", "Failed to load orders")
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrders").Msg("")
	}
	return
}

func (r *AdminRepositoryImpl) UpdateUserStatus(ctx context.Context, id string, isActive bool) (err error) {
	body, err := json.Marshal(dto.UserStatusRequest{IsActive: isActive})
	if err != nil {
		return fmt.Errorf("error marshalling user status request: %w", err)
	}

	path := fmt.Sprintf("/admin/users/%s/status", url.PathEscape(id))
	err = r.mutate(ctx, http.MethodPatch, path, body, "application/json", "Failed to toggle user status")
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateUserStatus").Msg("")
	}
	return
}

func (r *AdminRepositoryImpl) UpdateProductStatus(ctx context.Context, id string, isAvailable bool) (err error) {
	body, err := json.Marshal(dto.ProductStatusRequest{IsAvailable: isAvailable})
	if err != nil {
		return fmt.Errorf("error marshalling product status request: %w", err)
	}

	path := fmt.Sprintf("/admin/items/%s/status", url.PathEscape(id))
	err = r.mutate(ctx, http.MethodPatch, path, body, "application/json", "Failed to toggle product status")
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProductStatus").Msg("")
	}
	return
}

// DeleteProduct accepts an empty or non-JSON body on a 2xx status.
func (r *AdminRepositoryImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	const fallback = "Failed to delete product"

	path := fmt.Sprintf("/admin/items/%s", url.PathEscape(id))
	resp, err := r.call(ctx, http.MethodDelete, path, nil, "", fallback)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return
	}

	var env dto.BackendResponse
	if json.Unmarshal(resp.Body, &env) != nil {
		return nil
	}
	if env.Success != nil && !*env.Success {
		return errs.ServerRejection(messageOr(env.Message, fallback))
	}

	return nil
}

func (r *AdminRepositoryImpl) AddProduct(ctx context.Context, req dto.OutgoingRequest) (err error) {
	method := req.Method
	if method == "" {
		method = http.MethodPost
	}

	err = r.mutate(ctx, method, req.Path, req.Body, req.ContentType, "Failed to add product")
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Str("encoding", string(req.Encoding)).Msg("")
	}
	return
}

func (r *AdminRepositoryImpl) GetInvoiceData(ctx context.Context, orderID string) (data domain.InvoiceData, err error) {
	const fallback = "Failed to download invoice"

	path := fmt.Sprintf("/admin/orders/%s/invoice/data", url.PathEscape(orderID))
	resp, err := r.call(ctx, http.MethodGet, path, nil, "", fallback)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetInvoiceData").Msg("")
		return
	}

	env, err := decodeEnvelope(resp.Body, fallback)
	if err != nil {
		return
	}
	if len(env.InvoiceData) == 0 || string(env.InvoiceData) == "null" {
		return data, errs.ServerRejection(messageOr(env.Message, fallback))
	}
	if err = json.Unmarshal(env.InvoiceData, &data); err != nil {
		return data, errs.Transport(string(resp.Body), err)
	}

	return data, nil
}

// mutate sends a request that succeeded only when the backend answers with
// an explicit success:true.
func (r *AdminRepositoryImpl) mutate(ctx context.Context, method, path string, body []byte, contentType, fallback string) error {
	resp, err := r.call(ctx, method, path, body, contentType, fallback)
	if err != nil {
		return err
	}

	env, err := decodeEnvelope(resp.Body, fallback)
	if err != nil {
		return err
	}
	if env.Success == nil || !*env.Success {
		return errs.ServerRejection(messageOr(env.Message, fallback))
	}
	return nil
}

// call sends an authorized request and converts transport failures and
// non-2xx statuses into console errors. The returned response is always 2xx.
func (r *AdminRepositoryImpl) call(ctx context.Context, method, path string, body []byte, contentType, fallback string) (httpclient.Response, error) {
	authHeader, err := r.auth.AuthHeader()
	if err != nil {
		return httpclient.Response{}, err
	}

	headers := map[string]string{
		"Authorization": authHeader,
		"Accept":        "application/json",
	}
	if contentType != "" {
		headers["Content-Type"] = contentType
	}

	resp, err := r.client.SendRequest(ctx, httpclient.HttpRequest{
		URL:     r.baseURL + path,
		Method:  method,
		Body:    body,
		Headers: headers,
	})
	if err != nil {
		if errors.Is(err, httpclient.ErrUnavailable) {
			return resp, errs.Transport("Server is temporarily unavailable. Please try again later.", err)
		}
		return resp, errs.Transport(fallback, err)
	}

	if !resp.OK() {
		// An unparsable error body, typically an HTML error page, is kept
		// verbatim; the status line is only used when there is no body.
		var env dto.BackendResponse
		msg := fmt.Sprintf("Request failed with status %d", resp.StatusCode)
		if raw := bytes.TrimSpace(resp.Body); len(raw) > 0 {
			if json.Unmarshal(raw, &env) != nil {
				msg = string(resp.Body)
			} else if env.Message != "" {
				msg = env.Message
			}
		}
		return resp, errs.Transport(msg, fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode))
	}

	return resp, nil
}

// decodeEnvelope parses a 2xx body. An empty body is treated as an envelope
// without a success flag.
func decodeEnvelope(body []byte, fallback string) (env dto.BackendResponse, err error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return env, nil
	}
	if err = json.Unmarshal(body, &env); err != nil {
		return env, errs.Transport(string(body), err)
	}
	if env.Success != nil && !*env.Success {
		return env, errs.ServerRejection(messageOr(env.Message, fallback))
	}
	return env, nil
}

// getList accepts either a bare JSON array or an envelope whose data is one.
func getList[T any](ctx context.Context, r *AdminRepositoryImpl, path, fallback string) ([]T, error) {
	resp, err := r.call(ctx, http.MethodGet, path, nil, "", fallback)
	if err != nil {
		return nil, err
	}

	raw := bytes.TrimSpace(resp.Body)
	if !bytes.HasPrefix(raw, []byte("[")) {
		env, err := decodeEnvelope(resp.Body, fallback)
		if err != nil {
			return nil, err
		}
		raw = env.Data
	}

	items := []T{}
	if len(raw) == 0 || string(raw) == "null" {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errs.Transport(string(resp.Body), err)
	}

	return items, nil
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
