// Package qr renders WhatsApp click-to-chat links as QR codes for the
// sidebar WhatsApp channel.
package qr

import (
	"bytes"
	"fmt"
	"image/png"
	"net/url"
	"strings"
	"unicode"

	qrcode "github.com/skip2/go-qrcode"
)

// WhatsAppLink builds https://wa.me/<number>?text=<message>. Everything but
// digits is stripped from number.
func WhatsAppLink(number, message string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, number)
	if len(digits) < 7 {
		return "", fmt.Errorf("invalid WhatsApp number %q", number)
	}

	link := "https://wa.me/" + digits
	if message = strings.TrimSpace(message); message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link, nil
}

// PNG encodes content as a size x size PNG
func PNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code.Image(size)); err != nil {
		return nil, fmt.Errorf("failed to encode QR png: %w", err)
	}
	return buf.Bytes(), nil
}

// Terminal renders content with block characters for printing
func Terminal(content string) (string, error) {
	code, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR: %w", err)
	}
	return code.ToSmallString(false), nil
}
