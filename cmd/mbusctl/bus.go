// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package main

import (
	"fmt"

	"github.com/ffutop/mbus-gateway/internal/config"
	"github.com/ffutop/mbus-gateway/internal/router"
	"github.com/ffutop/mbus-gateway/transport"
	"github.com/ffutop/mbus-gateway/transport/serialbus"
	"github.com/ffutop/mbus-gateway/transport/tcp"
)

func newTransport(bus config.BusConfig) (transport.Transport, error) {
	switch bus.Type {
	case "serial":
		return serialbus.NewClient(bus.Serial), nil
	case "tcp":
		return tcp.NewClient(bus.Tcp.Address, bus.Tcp.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown bus type %q for bus %s", bus.Type, bus.Name)
	}
}

// newRouter routes every configured bus by its address rules. The first
// bus without rules becomes the default route.
func newRouter(cfg *config.Config) (*router.Router, error) {
	r := router.NewRouter("mbusctl", nil, nil)
	for _, bus := range cfg.Buses {
		t, err := newTransport(bus)
		if err != nil {
			return nil, err
		}
		if bus.Addresses == "" {
			if r.DefaultRoute == nil {
				r.DefaultRoute = t
			}
			continue
		}
		addresses, err := router.ParseAddresses(bus.Addresses)
		if err != nil {
			return nil, fmt.Errorf("bus %s: %w", bus.Name, err)
		}
		r.Add(addresses, t)
	}
	return r, nil
}
