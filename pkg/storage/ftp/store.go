// Copyright © 2018 One Concern

// Package ftp implements a remote store over an FTP session.
package ftp

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"path"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/oneconcern/repoassist/pkg/storage"
	"github.com/oneconcern/repoassist/pkg/storage/status"
	"go.uber.org/zap"
)

// DefaultPort of FTP servers
const DefaultPort = "21"

// ServerConn is the subset of the FTP client connection used by the store
type ServerConn interface {
	Login(user, password string) error
	ChangeDir(path string) error
	MakeDir(path string) error
	List(path string) ([]*ftp.Entry, error)
	Stor(path string, r io.Reader) error
	Retr(path string) (*ftp.Response, error)
	Delete(path string) error
	Quit() error
}

// DialFunc opens a connection to an FTP server
type DialFunc func(ctx context.Context, addr string, opts ...ftp.DialOption) (ServerConn, error)

func defaultDial(ctx context.Context, addr string, opts ...ftp.DialOption) (ServerConn, error) {
	conn, err := ftp.Dial(addr, append(opts, ftp.DialWithContext(ctx))...)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

type ftpStore struct {
	addr        string
	user        string
	timeout     time.Duration
	explicitTLS bool
	dial        DialFunc
	conn        ServerConn
	l           *zap.Logger
}

// New opens an authenticated session on an FTP server.
//
// The address is host[:port], the port defaults to 21.
func New(ctx context.Context, addr, user, password string, opts ...Option) (storage.Store, error) {
	s := &ftpStore{
		addr:    withDefaultPort(addr),
		user:    user,
		timeout: 30 * time.Second,
		dial:    defaultDial,
		l:       zap.NewNop(),
	}
	for _, apply := range opts {
		apply(s)
	}

	dialOpts := []ftp.DialOption{ftp.DialWithTimeout(s.timeout)}
	if s.explicitTLS {
		host, _, _ := net.SplitHostPort(s.addr)
		dialOpts = append(dialOpts, ftp.DialWithExplicitTLS(&tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}))
	}

	conn, err := s.dial(ctx, s.addr, dialOpts...)
	if err != nil {
		return nil, status.ErrStorageAPI.WrapMessage("dial "+s.addr, err)
	}
	if err = conn.Login(user, password); err != nil {
		_ = conn.Quit()
		return nil, toSentinelErrors(err, status.ErrUnauthorized)
	}
	s.conn = conn
	s.l.Debug("ftp session opened", zap.String("server", s.addr), zap.String("user", user))
	return s, nil
}

func withDefaultPort(addr string) string {
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, DefaultPort)
}

func (s *ftpStore) String() string {
	return "ftp://" + s.user + "@" + s.addr
}

// Exists changes the working directory to dir: a 550 reply means the directory does not exist
func (s *ftpStore) Exists(ctx context.Context, dir string) (bool, error) {
	err := s.conn.ChangeDir(dir)
	if err == nil {
		return true, nil
	}
	if isUnavailable(err) {
		return false, nil
	}
	return false, toSentinelErrors(err, status.ErrNotFound)
}

func (s *ftpStore) MkDir(ctx context.Context, dir string) error {
	return toSentinelErrors(s.conn.MakeDir(dir), status.ErrNotFound)
}

func (s *ftpStore) ChangeDir(ctx context.Context, dir string) error {
	return toSentinelErrors(s.conn.ChangeDir(dir), status.ErrNotFound)
}

func (s *ftpStore) List(ctx context.Context, dir string) ([]storage.FileInfo, error) {
	entries, err := s.conn.List(dir)
	if err != nil {
		return nil, toSentinelErrors(err, status.ErrNotFound)
	}
	infos := make([]storage.FileInfo, 0, len(entries))
	for _, entry := range entries {
		name := path.Base(entry.Name)
		if name == "." || name == ".." {
			continue
		}
		infos = append(infos, storage.FileInfo{
			Name:       name,
			Size:       int64(entry.Size),
			ModifiedAt: entry.Time,
			IsDir:      entry.Type == ftp.EntryTypeFolder,
		})
	}
	return infos, nil
}

func (s *ftpStore) Put(ctx context.Context, key string, rdr io.Reader) error {
	return toSentinelErrors(s.conn.Stor(key, rdr), status.ErrNotFound)
}

// Get retrieves a file. The returned reader must be closed before issuing another command.
func (s *ftpStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	resp, err := s.conn.Retr(key)
	if err != nil {
		return nil, toSentinelErrors(err, status.ErrNotExists)
	}
	return resp, nil
}

func (s *ftpStore) Delete(ctx context.Context, key string) error {
	return toSentinelErrors(s.conn.Delete(key), status.ErrNotExists)
}

func (s *ftpStore) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Quit()
	s.conn = nil
	s.l.Debug("ftp session closed", zap.String("server", s.addr))
	if err != nil {
		return status.ErrStorageAPI.Wrap(err)
	}
	return nil
}
