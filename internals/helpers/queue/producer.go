// Package queue mengirim event lifecycle (verifikasi, publikasi nilai,
// penerbitan sertifikat) ke kolaborator luar seperti layanan notifikasi.
package queue

import (
	"context"
	"crypto/tls"
	"log"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	EventTasmiVerified     = "tasmi.verified"
	EventTasmiPublished    = "tasmi.published"
	EventCertificateIssued = "certificate.issued"
)

type Event struct {
	Type       string         `json:"type"`
	Key        string         `json:"key"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

// Publisher dipanggil setelah transaksi commit. Gagal kirim tidak
// membatalkan operasi domain.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

/* =========================
   Kafka
========================= */

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(broker, topic, username, password string) *Producer {
	transport := &kafka.Transport{}
	if username != "" {
		transport.SASL = plain.Mechanism{Username: username, Password: password}
		transport.TLS = &tls.Config{}
	}

	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			Transport:    transport,
			WriteTimeout: 10 * time.Second,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, ev Event) error {
	// kafka belum siap → skip, jangan gagalkan request
	if p == nil || p.writer == nil {
		log.Println("[Queue] kafka producer not ready - skip publish", ev.Type)
		return nil
	}
	value, err := sonic.Marshal(ev)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.Key),
		Value: value,
		Time:  ev.OccurredAt,
	})
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

/* =========================
   Log only (tanpa broker)
========================= */

type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, ev Event) error {
	log.Printf("[Queue] event=%s key=%s data=%v", ev.Type, ev.Key, ev.Data)
	return nil
}

// New memilih Kafka kalau broker diset, selain itu hanya log.
func New(broker, topic, username, password string) Publisher {
	if broker == "" {
		return LogPublisher{}
	}
	return NewProducer(broker, topic, username, password)
}

// Emit mengirim event dan hanya mencatat kegagalannya.
func Emit(ctx context.Context, p Publisher, ev Event) {
	if p == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	if err := p.Publish(context.WithoutCancel(ctx), ev); err != nil {
		log.Printf("[Queue] publish %s key=%s failed: %v", ev.Type, ev.Key, err)
	}
}

/* =========================
   In-memory (test & dev)
========================= */

type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (m *MemoryPublisher) Publish(_ context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

func (m *MemoryPublisher) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

// Count menghitung event dengan tipe tertentu.
func (m *MemoryPublisher) Count(typ string) int {
	n := 0
	for _, ev := range m.Events() {
		if ev.Type == typ {
			n++
		}
	}
	return n
}
