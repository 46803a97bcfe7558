// Copyright (c) 2025 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ffutop/mbus-gateway/mbus"
	"github.com/ffutop/mbus-gateway/transport"
)

var (
	ErrNoRoute   = errors.New("mbus: no bus for address")
	ErrNoAddress = errors.New("mbus: frame carries no address")
)

// Router sends frames to the bus serving their address.
type Router struct {
	Name         string
	Routes       map[mbus.Address]transport.Transport
	DefaultRoute transport.Transport
}

// NewRouter creates a new Router instance
func NewRouter(name string, routes map[mbus.Address]transport.Transport, defaultRoute transport.Transport) *Router {
	if routes == nil {
		routes = make(map[mbus.Address]transport.Transport)
	}
	return &Router{
		Name:         name,
		Routes:       routes,
		DefaultRoute: defaultRoute,
	}
}

// Add routes the given addresses to t.
func (r *Router) Add(addresses []mbus.Address, t transport.Transport) {
	for _, a := range addresses {
		r.Routes[a] = t
	}
}

// ParseAddresses parses a string of address bytes (e.g. "1,2,5-10,254")
// into addresses.
func ParseAddresses(input string) ([]mbus.Address, error) {
	var addresses []mbus.Address
	parts := strings.Split(input, ",")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "-") {
			// Range
			ranges := strings.Split(part, "-")
			if len(ranges) != 2 {
				return nil, fmt.Errorf("invalid range: %s", part)
			}
			start, err := parseAddressByte(ranges[0])
			if err != nil {
				return nil, fmt.Errorf("invalid start of range: %w", err)
			}
			end, err := parseAddressByte(ranges[1])
			if err != nil {
				return nil, fmt.Errorf("invalid end of range: %w", err)
			}
			if start > end {
				return nil, fmt.Errorf("start of range %d is greater than end %d", start, end)
			}
			for i := start; i <= end; i++ {
				addresses = append(addresses, mbus.AddressFromByte(byte(i)))
			}
		} else {
			// Single
			id, err := parseAddressByte(part)
			if err != nil {
				return nil, fmt.Errorf("invalid address: %w", err)
			}
			addresses = append(addresses, mbus.AddressFromByte(byte(id)))
		}
	}
	return addresses, nil
}

func parseAddressByte(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if id < 0 || id > 255 {
		return 0, fmt.Errorf("address out of range: %d", id)
	}
	return id, nil
}

// Route returns the bus serving address.
func (r *Router) Route(address mbus.Address) (transport.Transport, error) {
	if t, ok := r.Routes[address]; ok {
		return t, nil
	}
	if r.DefaultRoute != nil {
		return r.DefaultRoute, nil
	}
	return nil, fmt.Errorf("%w %s", ErrNoRoute, address)
}

// Connect connects every distinct bus. Failures are logged; a bus may
// recover on its next Send.
func (r *Router) Connect(ctx context.Context) {
	for t := range r.transports() {
		if err := t.Connect(ctx); err != nil {
			slog.Error("Failed to connect bus", "router", r.Name, "err", err)
		}
	}
}

// Close closes every distinct bus.
func (r *Router) Close() error {
	var errs []error
	for t := range r.transports() {
		if err := t.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Send forwards frame to the bus serving its address.
func (r *Router) Send(ctx context.Context, frame mbus.Frame) (mbus.Frame, error) {
	address, ok := mbus.AddressOf(frame)
	if !ok {
		return nil, ErrNoAddress
	}
	target, err := r.Route(address)
	if err != nil {
		slog.Warn("No route found for address", "router", r.Name, "address", address)
		return nil, err
	}

	reply, err := target.Send(ctx, frame)
	if err != nil {
		slog.Error("Bus request failed", "router", r.Name, "address", address, "type", frame.Type(), "err", err)
		return nil, err
	}
	return reply, nil
}

func (r *Router) transports() map[transport.Transport]struct{} {
	unique := make(map[transport.Transport]struct{})
	for _, t := range r.Routes {
		unique[t] = struct{}{}
	}
	if r.DefaultRoute != nil {
		unique[r.DefaultRoute] = struct{}{}
	}
	return unique
}
