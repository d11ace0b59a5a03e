// Package checkout turns a cart into an order message and hands it to WhatsApp.
package checkout

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/catalog"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrInvalidPhone = errors.New("phone id must be digits only")
)

const linkBase = "https://wa.me/"

var printer = message.NewPrinter(language.Indonesian)

// Rupiah formats an amount with Indonesian digit grouping, e.g. 20000 → "20.000".
func Rupiah(amount float64) string {
	return printer.Sprint(number.Decimal(amount, number.MaxFractionDigits(2)))
}

// Summary renders the order message for the merchant.
func Summary(business string, items []catalog.CartItem, total float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Halo %s,\n\nSaya ingin memesan:\n", business)
	for _, item := range items {
		fmt.Fprintf(&b, "- %s (%d %s) Rp %s\n", item.Name, item.Quantity, item.Unit, Rupiah(item.LineTotal()))
	}
	fmt.Fprintf(&b, "\nTotal Estimasi: Rp %s\n\nMohon konfirmasi pesanannya.", Rupiah(total))
	return b.String()
}

// Link builds the wa.me deep link carrying message as pre-filled text.
func Link(phone, msg string) (string, error) {
	contact, err := ContactLink(phone)
	if err != nil {
		return "", err
	}
	text := strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
	return contact + "?text=" + text, nil
}

// ContactLink builds the plain wa.me chat link for phone.
func ContactLink(phone string) (string, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(phone), "+")
	if digits == "" || strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}
	return linkBase + digits, nil
}

// Order is a prepared checkout.
type Order struct {
	Message string
	Link    string
	Total   float64
	Count   int
}

// Prepare builds the order for the cart. An empty cart cannot be checked out.
func Prepare(business, phone string, items []catalog.CartItem) (Order, error) {
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}
	total := catalog.Total(items)
	msg := Summary(business, items, total)
	link, err := Link(phone, msg)
	if err != nil {
		return Order{}, err
	}
	return Order{Message: msg, Link: link, Total: total, Count: catalog.Count(items)}, nil
}
