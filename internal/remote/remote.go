// Package remote provides read-only access to the game server's world files.
// The production source is an SFTP session over password-authenticated SSH;
// a local directory source backs offline use and tests.
package remote

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/statsmc/mcstats/internal/config"
)

// DialTimeout bounds connection establishment. File reads after that have no
// timeout of their own; a failed read just skips that player.
const DialTimeout = 15 * time.Second

// Source is a read-only view of the server's file tree. One Source is opened
// per run, used sequentially, and closed when the run ends.
type Source interface {
	// ListJSON returns the names (not paths) of the *.json files in dir.
	ListJSON(dir string) ([]string, error)
	// ReadFile returns the full contents of the file at path.
	ReadFile(path string) ([]byte, error)
	Close() error
}

type sftpSource struct {
	conn   *ssh.Client
	client *sftp.Client
}

// DialSFTP opens an SSH connection with password authentication and starts an
// SFTP session on it. The server's host key is not verified, matching how the
// tool has always been pointed at a known private server.
func DialSFTP(cfg *config.Config) (Source, error) {
	sshCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec
		Timeout:         DialTimeout,
	}
	conn, err := ssh.Dial("tcp", cfg.Addr(), sshCfg)
	if err != nil {
		return nil, fmt.Errorf("ssh dial %s: %w", cfg.Addr(), err)
	}
	client, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open sftp session: %w", err)
	}
	return &sftpSource{conn: conn, client: client}, nil
}

func (s *sftpSource) ListJSON(dir string) ([]string, error) {
	entries, err := s.client.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func (s *sftpSource) ReadFile(path string) ([]byte, error) {
	f, err := s.client.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func (s *sftpSource) Close() error {
	err := s.client.Close()
	if cerr := s.conn.Close(); err == nil {
		err = cerr
	}
	return err
}

type dirSource struct {
	root string
}

// DirSource returns a Source backed by a local directory tree, rooted so that
// absolute remote paths resolve under root.
func DirSource(root string) Source {
	return &dirSource{root: root}
}

func (d *dirSource) resolve(p string) string {
	return filepath.Join(d.root, filepath.FromSlash(strings.TrimPrefix(p, "/")))
}

func (d *dirSource) ListJSON(dir string) ([]string, error) {
	entries, err := os.ReadDir(d.resolve(dir))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func (d *dirSource) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(d.resolve(path))
}

func (d *dirSource) Close() error { return nil }
