// Package storage binds state snapshots to crash-safe files.
package storage

import (
	"encoding"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/extremofile"
	"github.com/ckos/ckos/log2"
)

// Stater is anything the appliance persists: setup flags, lock
// session, agent mood.
type Stater interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

type backend interface {
	Read() ([]byte, error)
	io.Writer
}

// Persist binds one Stater to one storage directory. Zero value is
// unusable, call Init first.
type Persist struct {
	sync.Mutex
	log     *log2.Log
	tag     string
	target  Stater
	storage backend
}

func (p *Persist) Init(tag string, target Stater, root string, enabled bool, log *log2.Log) error {
	p.tag = tag
	p.log = log
	if !enabled {
		p.log.Debugf("persist %s disabled", p.tag)
		return nil
	}
	if root == "" {
		return errors.Errorf("persist %s enabled but root=empty", p.tag)
	}
	if target == nil {
		panic("code error persist target nil")
	}
	p.target = target
	p.storage = extremofile.New(extremofile.Config{
		Dir:      filepath.Join(root, tag),
		DirPerm:  0755,
		FilePerm: 0644,
	})
	return nil
}

// InitMem binds target to in-process memory, for tests and the
// simulator with persistence off.
func (p *Persist) InitMem(tag string, target Stater, log *log2.Log) {
	p.tag = tag
	p.log = log
	p.target = target
	p.storage = NewMemBackend()
}

func (p *Persist) Load() error {
	if p.tag == "" {
		panic("code error persist must call .Init() first")
	}
	if p.storage == nil {
		return nil
	}
	p.Lock()
	defer p.Unlock()
	tbegin := time.Now()
	b, err := p.storage.Read()
	duration := time.Since(tbegin)
	p.log.Debugf("persist %s storage.read duration=%v", p.tag, duration)
	if b != nil {
		if err != nil {
			p.log.Errorf("persist %s ignore non-critical storage err=%v", p.tag, err)
		}
		err = p.target.UnmarshalBinary(b)
	}
	return errors.Annotatef(err, "persist %s Load", p.tag)
}

func (p *Persist) Store() error {
	if p.tag == "" {
		panic("code error persist must call .Init() first")
	}
	if p.storage == nil {
		return nil
	}
	p.Lock()
	defer p.Unlock()
	b, err := p.target.MarshalBinary()
	if err == nil {
		tbegin := time.Now()
		_, err = p.storage.Write(b)
		duration := time.Since(tbegin)
		p.log.Debugf("persist %s storage.write duration=%v", p.tag, duration)
	}
	return errors.Annotatef(err, "persist %s Store", p.tag)
}

// MemBackend keeps the last written blob in memory.
type MemBackend struct {
	mu  sync.Mutex
	b   []byte
	err error
}

func NewMemBackend() *MemBackend { return &MemBackend{} }

func (m *MemBackend) SetError(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

func (m *MemBackend) Read() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.b == nil {
		return nil, nil
	}
	return append([]byte(nil), m.b...), nil
}

func (m *MemBackend) Write(b []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.b = append([]byte(nil), b...)
	return len(b), nil
}
