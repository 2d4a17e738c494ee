// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package muxer implements a framed request/response transport over a net.Conn.
//
// Each segment carries a method number and a request ID. Requests from the local side are
// matched to their responses by request ID, which allows many requests to be in flight on the
// same connection. Incoming requests are handed to an optional RequestHandler, which is how the
// server side of a connection is implemented.
package muxer

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

var ErrMuxerShuttingDown = errors.New("muxer is shutting down")

// RequestHandler handles an incoming request and returns the response payload. Returning an
// error shuts down the muxer
type RequestHandler func(method uint16, payload []byte) ([]byte, error)

type MuxerOptionFunc func(*Muxer)

// WithRequestHandler specifies the handler for requests initiated by the remote side
func WithRequestHandler(handler RequestHandler) MuxerOptionFunc {
	return func(m *Muxer) {
		m.requestHandler = handler
	}
}

// WithLogger specifies the logger to use. The default is slog.Default()
func WithLogger(logger *slog.Logger) MuxerOptionFunc {
	return func(m *Muxer) {
		m.logger = logger
	}
}

type Muxer struct {
	conn           net.Conn
	logger         *slog.Logger
	requestHandler RequestHandler
	// Holds a token while a segment is being written
	sendLock       chan struct{}
	pendingMutex   sync.Mutex
	pending        map[uint32]chan *Segment
	nextRequestId  atomic.Uint32
	doneChan       chan struct{}
	errorChan      chan error
	err            error
	onceStop       sync.Once
	waitGroup      sync.WaitGroup
}

// New creates a muxer for the given connection and starts reading from it
func New(conn net.Conn, opts ...MuxerOptionFunc) *Muxer {
	m := &Muxer{
		conn:      conn,
		sendLock:  make(chan struct{}, 1),
		pending:   make(map[uint32]chan *Segment),
		doneChan:  make(chan struct{}),
		errorChan: make(chan error, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	m.logger = m.logger.With("component", "muxer")
	m.waitGroup.Add(1)
	go m.readLoop()
	return m
}

// ErrorChan returns a channel that receives the error that caused the muxer to shut down, if any
func (m *Muxer) ErrorChan() <-chan error {
	return m.errorChan
}

// Done returns a channel that is closed when the muxer shuts down
func (m *Muxer) Done() <-chan struct{} {
	return m.doneChan
}

// Err returns the error that caused the muxer to shut down. It returns nil while the muxer is
// running or after a clean Stop()
func (m *Muxer) Err() error {
	select {
	case <-m.doneChan:
		return m.err
	default:
		return nil
	}
}

// Stop shuts down the muxer, closes the underlying connection, and waits for the read loop and
// any running request handlers to finish
func (m *Muxer) Stop() {
	m.shutdown(nil)
	m.waitGroup.Wait()
}

func (m *Muxer) shutdown(err error) {
	m.onceStop.Do(func() {
		m.err = err
		close(m.doneChan)
		_ = m.conn.Close()
		if err != nil {
			m.logger.Debug("muxer shutting down", "error", err)
			m.errorChan <- err
		}
	})
}

// Request sends a request and waits for the matching response. A response arriving after the
// context is done is dropped
func (m *Muxer) Request(
	ctx context.Context,
	method uint16,
	payload []byte,
) ([]byte, error) {
	requestId := m.nextRequestId.Add(1)
	respChan := make(chan *Segment, 1)
	m.pendingMutex.Lock()
	select {
	case <-m.doneChan:
		m.pendingMutex.Unlock()
		return nil, m.shutdownError()
	default:
	}
	m.pending[requestId] = respChan
	m.pendingMutex.Unlock()
	defer m.removePending(requestId)
	if err := m.SendContext(ctx, NewSegment(method, requestId, payload, false)); err != nil {
		return nil, err
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-m.doneChan:
		// Prefer a response that raced with shutdown
		select {
		case resp := <-respChan:
			return resp.Payload, nil
		default:
		}
		return nil, m.shutdownError()
	case resp := <-respChan:
		return resp.Payload, nil
	}
}

func (m *Muxer) shutdownError() error {
	if m.err != nil {
		return fmt.Errorf("%w: %w", ErrMuxerShuttingDown, m.err)
	}
	return ErrMuxerShuttingDown
}

func (m *Muxer) removePending(requestId uint32) {
	m.pendingMutex.Lock()
	delete(m.pending, requestId)
	m.pendingMutex.Unlock()
}

// Send writes a single segment to the connection
func (m *Muxer) Send(msg *Segment) error {
	return m.SendContext(context.Background(), msg)
}

// SendContext writes a single segment to the connection, giving up when the context is done.
// A write that fails part way through leaves the stream unusable and shuts down the muxer
func (m *Muxer) SendContext(ctx context.Context, msg *Segment) error {
	buf := &bytes.Buffer{}
	if err := binary.Write(buf, binary.BigEndian, msg.SegmentHeader); err != nil {
		return err
	}
	buf.Write(msg.Payload)
	// Only one segment is written at a time
	select {
	case m.sendLock <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	case <-m.doneChan:
		return m.shutdownError()
	}
	defer func() { <-m.sendLock }()
	n, err := m.writeContext(ctx, buf.Bytes())
	if err == nil {
		return nil
	}
	// Write deadlines only ever come from the context, which may not report done just yet
	if n == 0 && ctx.Done() != nil && errors.Is(err, os.ErrDeadlineExceeded) {
		<-ctx.Done()
		return ctx.Err()
	}
	m.shutdown(err)
	return err
}

// writeContext writes to the connection with a write deadline that follows the context
func (m *Muxer) writeContext(ctx context.Context, data []byte) (int, error) {
	if ctx.Done() == nil {
		return m.conn.Write(data)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = m.conn.SetWriteDeadline(deadline)
	}
	fired := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		_ = m.conn.SetWriteDeadline(time.Now())
		close(fired)
	})
	n, err := m.conn.Write(data)
	if !stop() {
		<-fired
	}
	_ = m.conn.SetWriteDeadline(time.Time{})
	return n, err
}

func (m *Muxer) readLoop() {
	defer m.waitGroup.Done()
	for {
		header := SegmentHeader{}
		if err := binary.Read(m.conn, binary.BigEndian, &header); err != nil {
			m.readError(err)
			return
		}
		if header.PayloadLength > SegmentMaxPayloadLength {
			m.shutdown(
				fmt.Errorf(
					"segment payload length %d exceeds maximum of %d",
					header.PayloadLength,
					SegmentMaxPayloadLength,
				),
			)
			return
		}
		msg := &Segment{
			SegmentHeader: header,
			Payload:       make([]byte, header.PayloadLength),
		}
		// We use ReadFull because it guarantees to read the expected number of bytes or
		// return an error
		if _, err := io.ReadFull(m.conn, msg.Payload); err != nil {
			m.readError(err)
			return
		}
		if msg.IsResponse() {
			m.deliverResponse(msg)
			continue
		}
		if m.requestHandler == nil {
			m.shutdown(
				fmt.Errorf("received request for method %d with no request handler", msg.GetMethod()),
			)
			return
		}
		m.waitGroup.Add(1)
		go m.handleRequest(msg)
	}
}

func (m *Muxer) readError(err error) {
	select {
	case <-m.doneChan:
		// Reads fail after our own shutdown closes the connection
		return
	default:
	}
	m.shutdown(err)
}

func (m *Muxer) deliverResponse(msg *Segment) {
	m.pendingMutex.Lock()
	respChan, ok := m.pending[msg.RequestId]
	delete(m.pending, msg.RequestId)
	m.pendingMutex.Unlock()
	if !ok {
		m.logger.Debug(
			"dropping response for unknown request",
			"request_id", msg.RequestId,
			"method", msg.GetMethod(),
		)
		return
	}
	// The channel is buffered and only ever receives one segment
	respChan <- msg
}

func (m *Muxer) handleRequest(msg *Segment) {
	defer m.waitGroup.Done()
	respPayload, err := m.requestHandler(msg.GetMethod(), msg.Payload)
	if err != nil {
		m.shutdown(
			fmt.Errorf("request handler for method %d failed: %w", msg.GetMethod(), err),
		)
		return
	}
	if err := m.Send(NewSegment(msg.GetMethod(), msg.RequestId, respPayload, true)); err != nil {
		m.readError(err)
	}
}
