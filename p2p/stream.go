package p2p

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/protocol"
	"github.com/libp2p/go-msgio"
	"go.uber.org/zap"
)

// outbound writes queued messages to a single peer over one persistent stream.
// Reliable messages are never dropped by the queue and are written in order.
// Best-effort messages are dropped when the queue is full.
type outbound struct {
	logger  *zap.Logger
	h       host.Host
	peer    Peer
	proto   protocol.ID
	timeout time.Duration

	cancel context.CancelFunc
	done   chan struct{}

	mu         sync.Mutex
	reliable   [][]byte
	notify     chan struct{}
	bestEffort chan []byte

	stream network.Stream
	writer msgio.WriteCloser
}

func newOutbound(logger *zap.Logger, h host.Host, pid Peer, proto protocol.ID, cfg Config) *outbound {
	return &outbound{
		logger:     logger,
		h:          h,
		peer:       pid,
		proto:      proto,
		timeout:    cfg.DialTimeout,
		done:       make(chan struct{}),
		notify:     make(chan struct{}, 1),
		bestEffort: make(chan []byte, cfg.OutboundQueue),
	}
}

func (o *outbound) enqueue(data []byte, reliable bool) {
	if !reliable {
		select {
		case o.bestEffort <- data:
		default:
			droppedMessages.WithLabelValues(reasonQueueFull).Inc()
		}
		return
	}
	o.mu.Lock()
	o.reliable = append(o.reliable, data)
	o.mu.Unlock()
	select {
	case o.notify <- struct{}{}:
	default:
	}
}

func (o *outbound) stop() {
	o.cancel()
	<-o.done
}

func (o *outbound) run(ctx context.Context) {
	defer close(o.done)
	defer o.closeStream()
	for {
		select {
		case <-ctx.Done():
			return
		case <-o.notify:
			o.mu.Lock()
			batch := o.reliable
			o.reliable = nil
			o.mu.Unlock()
			for _, msg := range batch {
				if ctx.Err() != nil {
					return
				}
				o.write(ctx, msg, true)
			}
		case msg := <-o.bestEffort:
			o.write(ctx, msg, false)
		}
	}
}

// write retries reliable messages once on a fresh stream.
func (o *outbound) write(ctx context.Context, msg []byte, reliable bool) {
	attempts := 1
	if reliable {
		attempts = 2
	}
	for i := 0; i < attempts; i++ {
		if err := o.ensureStream(ctx); err != nil {
			o.logger.Debug("failed to open stream",
				zap.Stringer("peer", o.peer),
				zap.Error(err),
			)
			continue
		}
		o.stream.SetWriteDeadline(time.Now().Add(o.timeout))
		if err := o.writer.WriteMsg(msg); err != nil {
			o.logger.Debug("failed to write message",
				zap.Stringer("peer", o.peer),
				zap.Error(err),
			)
			o.resetStream()
			continue
		}
		sentMessages.WithLabelValues(delivery(reliable)).Inc()
		return
	}
	droppedMessages.WithLabelValues(reasonStream).Inc()
}

func (o *outbound) ensureStream(ctx context.Context) error {
	if o.stream != nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	stream, err := o.h.NewStream(network.WithNoDial(ctx, "only connected peers"), o.peer, o.proto)
	if err != nil {
		return err
	}
	o.stream = stream
	o.writer = msgio.NewVarintWriter(stream)
	return nil
}

func (o *outbound) resetStream() {
	if o.stream != nil {
		o.stream.Reset()
		o.stream, o.writer = nil, nil
	}
}

func (o *outbound) closeStream() {
	if o.stream != nil {
		o.stream.Close()
		o.stream, o.writer = nil, nil
	}
}

// handleStream reads delimited messages until the remote closes the stream.
func (fh *Host) handleStream(ctx context.Context, stream network.Stream) {
	pid := stream.Conn().RemotePeer()
	reader := msgio.NewVarintReaderSize(stream, fh.cfg.MaxMessageSize)
	for {
		msg, err := reader.ReadMsg()
		if err != nil {
			switch {
			case errors.Is(err, msgio.ErrMsgTooLarge):
				fh.logger.Debug("message exceeds limit",
					zap.Stringer("peer", pid),
					zap.Int("limit", fh.cfg.MaxMessageSize),
				)
				droppedMessages.WithLabelValues(reasonTooLarge).Inc()
				stream.Reset()
			case errors.Is(err, io.EOF):
				stream.Close()
			default:
				fh.logger.Debug("failed to read message", zap.Stringer("peer", pid), zap.Error(err))
				stream.Reset()
			}
			return
		}
		data := make([]byte, len(msg))
		copy(data, msg)
		reader.ReleaseMsg(msg)
		receivedMessages.WithLabelValues(reliableLabel).Inc()
		fh.deliver(ctx, data, pid)
	}
}
