// Package export renders orders and invoices as xlsx workbooks.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/alimikegami/point-of-sales/admin-console/internal/domain"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var orderHeader = []interface{}{
	"Order ID", "Created", "Customer", "Phone", "City", "Items",
	"Payment Method", "Payment Status", "Order Status", "Total",
}

// Orders writes one row per order under a header row.
func Orders(orders []domain.Order) (domain.Blob, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return domain.Blob{}, err
	}
	if err := f.SetSheetRow(sheet, "A1", &orderHeader); err != nil {
		return domain.Blob{}, err
	}

	for i, o := range orders {
		items := 0
		for _, item := range o.Items {
			items += item.Quantity
		}
		row := []interface{}{
			o.OrderID,
			o.CreatedAt.Format("2006-01-02 15:04"),
			o.Address.Name,
			o.Address.Phone,
			o.Address.City,
			items,
			o.PaymentMethod,
			o.PaymentStatus,
			o.OrderStatus,
			o.TotalAmount,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return domain.Blob{}, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return domain.Blob{}, err
		}
	}

	return write(f, "orders.xlsx")
}

// Invoice is the default formatter for invoice data fetched from the backend.
type Invoice struct{}

func (Invoice) Format(orderID string, data domain.InvoiceData) (domain.Blob, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Invoice"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return domain.Blob{}, err
	}

	addr := data.Customer.Address
	rows := [][]interface{}{
		{"Invoice", orderID},
		{"Customer", data.Customer.Name},
		{"Phone", data.Customer.Phone},
		{"Email", data.Customer.Email},
		{"Address", fmt.Sprintf("%s, %s, %s %s", addr.Address, addr.City, addr.State, addr.Pincode)},
		{"Payment Method", data.Order.PaymentMethod},
		{"Payment Status", data.Order.PaymentStatus},
		{"Order Status", data.Order.OrderStatus},
		{},
		{"Item", "Quantity", "Price", "Total"},
	}
	for _, item := range data.Order.Items {
		rows = append(rows, []interface{}{item.Name, item.Quantity, item.Price, item.Total()})
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Subtotal", data.Order.Subtotal},
		[]interface{}{"Delivery Fee", data.Order.DeliveryFee},
		[]interface{}{"Tax", data.Order.TaxAmount},
		[]interface{}{"Total Amount", data.Order.TotalAmount},
	)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return domain.Blob{}, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return domain.Blob{}, err
		}
	}

	return write(f, fmt.Sprintf("invoice-%s.xlsx", orderID))
}

func write(f *excelize.File, name string) (domain.Blob, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return domain.Blob{}, err
	}
	return domain.Blob{Name: name, ContentType: ContentTypeXLSX, Data: buf.Bytes()}, nil
}
