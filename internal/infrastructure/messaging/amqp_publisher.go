package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	appshift "github.com/jhoicas/inventario-turnos/internal/application/shift"
	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
	"github.com/jhoicas/inventario-turnos/pkg/config"
)

var _ appshift.ShiftReporter = (*ShiftPublisher)(nil)

// channel subconjunto de *amqp.Channel que usa el publicador.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// dialFunc abre conexión y canal; close libera ambos.
type dialFunc func(url string, timeout time.Duration) (ch channel, close func(), err error)

// ShiftPublisher publica shift.finalized. Abre una conexión por cierre: un turno se cierra pocas veces al día.
// Conexión y publicación quedan acotadas por timeout aunque el broker no responda.
type ShiftPublisher struct {
	url      string
	exchange string
	timeout  time.Duration
	dial     dialFunc
	now      func() time.Time
	log      zerolog.Logger
}

// NewShiftPublisher construye el publicador. Devuelve nil si la URL está vacía.
func NewShiftPublisher(cfg config.AMQPConfig, log zerolog.Logger) *ShiftPublisher {
	if cfg.URL == "" {
		return nil
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &ShiftPublisher{url: cfg.URL, exchange: cfg.Exchange, timeout: timeout, dial: dialAMQP, now: time.Now, log: log}
}

func dialAMQP(url string, timeout time.Duration) (channel, func(), error) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("amqp channel: %w", err)
	}
	return ch, func() { _ = conn.Close() }, nil
}

// ReportShift publica el evento de cierre como mensaje persistente.
func (p *ShiftPublisher) ReportShift(ctx context.Context, report entity.ShiftReport) error {
	body, err := json.Marshal(NewShiftFinalizedEvent(report))
	if err != nil {
		return fmt.Errorf("codificar evento: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	ch, closeConn, err := p.connect(ctx)
	if err != nil {
		return err
	}
	defer closeConn()
	defer func() { _ = ch.Close() }()

	// Con exchange por defecto la routing key es el nombre de la cola.
	if p.exchange == "" {
		if _, err := ch.QueueDeclare(ShiftFinalizedQueue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declarar cola %s: %w", ShiftFinalizedQueue, err)
		}
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, p.exchange, ShiftFinalizedQueue, false, false, msg); err != nil {
		return fmt.Errorf("publicar %s: %w", ShiftFinalizedQueue, err)
	}
	p.log.Debug().Str("device_id", report.DeviceID).Int("bytes", len(body)).Msg("evento shift.finalized publicado")
	return nil
}

type dialResult struct {
	ch    channel
	close func()
	err   error
}

// connect marca en segundo plano y abandona la espera si ctx vence; la conexión tardía se cierra.
func (p *ShiftPublisher) connect(ctx context.Context) (channel, func(), error) {
	done := make(chan dialResult, 1)
	go func() {
		ch, closeConn, err := p.dial(p.url, p.timeout)
		done <- dialResult{ch: ch, close: closeConn, err: err}
	}()

	select {
	case r := <-done:
		return r.ch, r.close, r.err
	case <-ctx.Done():
		go func() {
			if r := <-done; r.err == nil {
				_ = r.ch.Close()
				r.close()
			}
		}()
		return nil, nil, fmt.Errorf("amqp dial: %w", ctx.Err())
	}
}
