// Copyright 2025 walteh LLC
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

package ftpsession

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"

	"github.com/jlaffaye/ftp"
	"github.com/rs/zerolog"
	"github.com/walteh/ftprc/pkg/config"
	"github.com/walteh/ftprc/pkg/exitcode"
	"gitlab.com/tozd/go/errors"
)

// Client is the jlaffaye/ftp-backed Session implementation.
type Client struct {
	conn *ftp.ServerConn
}

var _ Session = (*Client)(nil)

// Connect dials and authenticates against the server described by conn.
// Any failure here (unreachable host, rejected credentials) is classified as
// an authentication failure.
func Connect(ctx context.Context, cn config.Connection) (*Client, error) {
	logger := zerolog.Ctx(ctx)

	addr := fmt.Sprintf("%s:%d", cn.Host, cn.Port)

	opts := []ftp.DialOption{
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(cn.Timeout()),
	}
	if cn.ExplicitTLS {
		opts = append(opts, ftp.DialWithExplicitTLS(&tls.Config{ServerName: cn.Host}))
	}

	logger.Debug().Str("addr", addr).Msg("dialing ftp server")
	conn, err := ftp.Dial(addr, opts...)
	if err != nil {
		return nil, errors.Errorf("connecting to %s: %w", addr, errors.Join(err, exitcode.ErrAuthentication))
	}

	if err := conn.Login(cn.Username, cn.Password); err != nil {
		_ = conn.Quit()
		return nil, errors.Errorf("logging in to %s: %w", addr, errors.Join(err, exitcode.ErrAuthentication))
	}

	logger.Debug().Str("addr", addr).Msg("ftp session established")
	return &Client{conn: conn}, nil
}

func (c *Client) CurrentDir() (string, error) {
	dir, err := c.conn.CurrentDir()
	if err != nil {
		return "", errors.Errorf("querying current location: %w", err)
	}
	return dir, nil
}

func (c *Client) ChangeDir(path string) error {
	return c.conn.ChangeDir(path)
}

func (c *Client) NameList(path string) ([]string, error) {
	names, err := c.conn.NameList(path)
	if err != nil {
		return nil, errors.Errorf("listing %s: %w", path, err)
	}
	return names, nil
}

func (c *Client) ListEntries(path string) ([]Entry, error) {
	raw, err := c.conn.List(path)
	if err != nil {
		// Servers with unparseable LIST output still walk fine via the
		// NameList + probe fallback.
		return nil, errors.Errorf("typed listing of %s: %w", path, errors.Join(err, ErrListingUnsupported))
	}

	entries := make([]Entry, 0, len(raw))
	for _, e := range raw {
		if e.Name == "." || e.Name == ".." {
			continue
		}
		kind := KindUnknown
		switch e.Type {
		case ftp.EntryTypeFile:
			kind = KindFile
		case ftp.EntryTypeFolder:
			kind = KindFolder
		}
		entries = append(entries, Entry{Path: e.Name, Kind: kind})
	}
	return entries, nil
}

func (c *Client) Delete(path string) error {
	return c.conn.Delete(path)
}

func (c *Client) Rename(from, to string) error {
	return c.conn.Rename(from, to)
}

func (c *Client) Retr(path string) (io.ReadCloser, error) {
	resp, err := c.conn.Retr(path)
	if err != nil {
		return nil, errors.Errorf("retrieving %s: %w", path, err)
	}
	return resp, nil
}

func (c *Client) FileSize(path string) (int64, error) {
	return c.conn.FileSize(path)
}

func (c *Client) MakeDir(path string) error {
	return c.conn.MakeDir(path)
}

func (c *Client) Quit() error {
	return c.conn.Quit()
}
