package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// GenerateReceiptID derives a gateway receipt from the current time, e.g.
// order_rcptid_1715000000123.
func GenerateReceiptID(now time.Time) string {
	return fmt.Sprintf("order_rcptid_%d", now.UnixMilli())
}

// ReceiptGenerator hands out time-derived receipts that stay unique within
// the process even when two calls share a millisecond.
type ReceiptGenerator struct {
	last atomic.Int64
}

func (g *ReceiptGenerator) Next(now time.Time) string {
	for {
		prev := g.last.Load()
		ms := now.UnixMilli()
		if ms <= prev {
			ms = prev + 1
		}
		if g.last.CompareAndSwap(prev, ms) {
			return GenerateReceiptID(time.UnixMilli(ms))
		}
	}
}

// GenerateMockOrderID mimics the gateway's order_<id> format for local runs.
func GenerateMockOrderID() string {
	randomNum, _ := rand.Int(rand.Reader, big.NewInt(999999999))
	return fmt.Sprintf("order_mock%d%09d", time.Now().Unix(), randomNum.Int64())
}

func GenerateEventID() string {
	return uuid.NewString()
}
