package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"retailgenie/gateway/internal/model"
)

var productCSVHeader = []string{"Name", "Price", "Category", "Stock Status", "Description"}

func WriteProductsCSV(w io.Writer, products []model.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(productCSVHeader); err != nil {
		return err
	}
	for _, p := range products {
		stock := "Out of Stock"
		if p.Available() {
			stock = "In Stock"
		}
		record := []string{
			p.Name,
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			p.Category,
			stock,
			p.Description,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var orderCSVHeader = []string{"Order ID", "Customer", "Date", "Status", "Total", "Items"}

// WriteOrdersCSV writes one row per order. Items are listed as "2x Mug; 1x Tea".
func WriteOrdersCSV(w io.Writer, orders []model.Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(orderCSVHeader); err != nil {
		return err
	}
	for _, o := range orders {
		date, ok := orderDay(o.CreatedAt)
		if !ok {
			date = o.CreatedAt
		}
		items := make([]string, len(o.Items))
		for i, item := range o.Items {
			items[i] = fmt.Sprintf("%dx %s", item.Quantity, item.ProductName)
		}
		record := []string{
			o.ID,
			o.CustomerName,
			date,
			string(o.Status),
			strconv.FormatFloat(o.TotalAmount, 'f', -1, 64),
			strings.Join(items, "; "),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
