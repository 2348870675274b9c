package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"amberfy/internal/amber"
	"amberfy/internal/shaderjob"
)

// Current schema version - increment when scriptPayload format changes
const scriptCacheSchemaVersion uint16 = 1

// Digest identifies the complete input set of one conversion.
type Digest [sha256.Size]byte

// ScriptCache хранит отрендеренные скрипты по дайджесту входов на диске.
// Thread-safe for concurrent access.
type ScriptCache struct {
	mu  sync.RWMutex
	dir string
}

// scriptPayload is the on-disk cache entry.
type scriptPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	// Digest echoes the key, as a cheap corruption check.
	Digest Digest

	// Script is the rendered text, stored verbatim.
	Script string
}

// OpenScriptCache initializes and returns a disk cache at the standard
// location for app, typically ~/.cache/amberfy.
func OpenScriptCache(app string) (*ScriptCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ScriptCache{dir: dir}, nil
}

func (c *ScriptCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки — подкаталог "scripts".
	return filepath.Join(c.dir, "scripts", hexKey+".mp")
}

// CacheKey hashes everything a script depends on: the payload schema, the
// settings, and both name and bytes of every input file of the test. Any
// change to any of them yields a different key.
func CacheKey(test amber.FileTest, settings amber.Settings) (Digest, error) {
	h := sha256.New()
	enc := msgpack.NewEncoder(h)
	if err := enc.Encode(scriptCacheSchemaVersion); err != nil {
		return Digest{}, err
	}
	if err := enc.Encode(settings); err != nil {
		return Digest{}, err
	}
	if err := hashJobFile(enc, test.Variant); err != nil {
		return Digest{}, err
	}
	if test.Reference != nil {
		if err := hashJobFile(enc, *test.Reference); err != nil {
			return Digest{}, err
		}
	}
	var key Digest
	copy(key[:], h.Sum(nil))
	return key, nil
}

func hashJobFile(enc *msgpack.Encoder, job amber.JobFile) error {
	if err := enc.EncodeString(job.NamePrefix); err != nil {
		return err
	}
	if err := enc.EncodeString(job.ProcessingInfo); err != nil {
		return err
	}
	if err := hashFile(enc, job.AsmSpirvJobJSON); err != nil {
		return err
	}
	asm, err := shaderjob.RelatedFiles(job.AsmSpirvJobJSON, shaderjob.AllExtensions, []string{shaderjob.SuffixAsmSPIRV})
	if err != nil {
		return err
	}
	for _, path := range asm {
		if err := hashFile(enc, path); err != nil {
			return err
		}
	}
	if job.SourceJSON != "" {
		if err := hashFile(enc, job.SourceJSON); err != nil {
			return err
		}
		sources, err := shaderjob.RelatedFiles(job.SourceJSON, shaderjob.AllExtensions, []string{shaderjob.SuffixGLSL})
		if err != nil {
			return err
		}
		for _, path := range sources {
			if err := hashFile(enc, path); err != nil {
				return err
			}
		}
	}
	return nil
}

// hashFile feeds the file's base name and bytes into the digest. The base
// name keeps stages apart; the full path stays out so a relocated tree
// still hits.
func hashFile(enc *msgpack.Encoder, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := enc.EncodeString(filepath.Base(path)); err != nil {
		return err
	}
	return enc.EncodeBytes(data)
}

// Put serializes and writes a script under key, atomically.
func (c *ScriptCache) Put(key Digest, script string) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	payload := scriptPayload{Schema: scriptCacheSchemaVersion, Digest: key, Script: script}
	if err := enc.Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads the script stored under key. ok is false on a miss, on a
// schema mismatch and on a digest mismatch.
func (c *ScriptCache) Get(key Digest) (script string, ok bool, err error) {
	if c == nil {
		return "", false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	defer func() {
		_ = f.Close()
	}()

	var payload scriptPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return "", false, err
	}
	if payload.Schema != scriptCacheSchemaVersion || payload.Digest != key {
		return "", false, nil
	}
	return payload.Script, true, nil
}
