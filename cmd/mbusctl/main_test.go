// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package main

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ffutop/mbus-gateway/mbus"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDecodeHex(t *testing.T) {
	raw, err := decodeHex(" |10 40_01:41 16| ")
	require.NoError(t, err)
	require.Equal(t, []byte{0x10, 0x40, 0x01, 0x41, 0x16}, raw)

	_, err = decodeHex("ABC")
	require.Error(t, err)
}

func TestParseControl(t *testing.T) {
	for _, s := range []string{"REQ_UD2", "req_ud2", "request"} {
		c, err := parseControl(s)
		require.NoError(t, err)
		require.Equal(t, mbus.Request, c)
	}
	_, err := parseControl("REQ_UD3")
	require.Error(t, err)
}

func TestParseAddress(t *testing.T) {
	a, err := parseAddress("0xFE")
	require.NoError(t, err)
	require.Equal(t, mbus.Diagnosis, a)

	a, err = parseAddress("broadcast")
	require.NoError(t, err)
	require.Equal(t, mbus.Broadcast, a)

	a, err = parseAddress("5")
	require.NoError(t, err)
	require.Equal(t, mbus.AddressFromByte(5), a)

	_, err = parseAddress("256")
	require.Error(t, err)
}

func TestEncodeCommand(t *testing.T) {
	out, err := run(t, "encode", "short", "--control", "SND_NKE", "--address", "1")
	require.NoError(t, err)
	require.Equal(t, "1040014116\n", out)

	out, err = run(t, "encode", "long", "--control", "SND_UD", "--address", "1", "--data", "00010203")
	require.NoError(t, err)
	require.Equal(t, "680606685301000102035A16\n", out)

	out, err = run(t, "encode", "short", "--address", "1", "--fcb")
	require.NoError(t, err)
	require.Equal(t, "107B017C16\n", out)

	out, err = run(t, "encode", "ack")
	require.NoError(t, err)
	require.Equal(t, "E5\n", out)
}

func TestDecodeCommand(t *testing.T) {
	out, err := run(t, "decode", "E5", "10 7B 01 7C 16")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "ACK", lines[0])
	require.Equal(t, "short REQ_UD2 address=primary(1) fcb=true checksum=0x7c", lines[1])

	_, err = run(t, "decode", "00")
	require.Error(t, err)
}

func TestReplayCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x10, 0x40, 0x01, 0x41, 0x16, 0xE5}, 0644))

	out, err := run(t, "replay", path)
	require.NoError(t, err)
	require.Contains(t, out, "short SND_NKE address=primary(1)")
	require.Contains(t, out, "ACK")
}

func TestSendCommand(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, mbus.ShortFrameSize)
		if _, err := conn.Read(buf); err != nil {
			return
		}
		conn.Write([]byte{0xE5})
	}()

	dir := t.TempDir()
	capturePath := filepath.Join(dir, "capture.bin")
	configPath := filepath.Join(dir, "config.yaml")
	cfg := "buses:\n" +
		"  - name: lab\n" +
		"    type: tcp\n" +
		"    addresses: \"1-5\"\n" +
		"    tcp:\n" +
		"      address: " + listener.Addr().String() + "\n" +
		"capture:\n" +
		"  type: file\n" +
		"  path: " + capturePath + "\n"
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0644))

	out, err := run(t, "send", "--config", configPath, "--control", "SND_NKE", "--address", "1")
	require.NoError(t, err)
	require.Contains(t, out, "> 1040014116")
	require.Contains(t, out, "< E5  ACK")

	recorded, err := os.ReadFile(capturePath)
	require.NoError(t, err)
	require.Equal(t, []byte{0x10, 0x40, 0x01, 0x41, 0x16, 0xE5}, recorded)
}
