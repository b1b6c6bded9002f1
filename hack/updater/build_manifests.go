// Command build-manifests turns per-channel release configuration into
// signed update manifests consumed by bladectl self-update. It can also
// generate bsdiff delta patches from a pair of binaries when a channel
// config references them by path.
package main

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kr/binarydist"

	"github.com/Los-Altos/blade-code/internal/updater"
)

type artifactInput struct {
	URL    string `json:"url"`
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
}

type deltaInput struct {
	FromVersion string `json:"from_version"`
	URL         string `json:"url"`
	Path        string `json:"path"`
	SHA256      string `json:"sha256"`
	// OldPath/NewPath trigger patch generation when Path is absent.
	OldPath string `json:"old_path"`
	NewPath string `json:"new_path"`
}

type buildInput struct {
	OS    string        `json:"os"`
	Arch  string        `json:"arch"`
	Full  artifactInput `json:"full"`
	Delta *deltaInput   `json:"delta"`
}

type channelInput struct {
	Channel  string       `json:"channel"`
	Version  string       `json:"version"`
	NotesURL string       `json:"notes_url"`
	Builds   []buildInput `json:"builds"`
}

func main() {
	configDir := flag.String("config", "packaging/updater", "channel configuration directory")
	outDir := flag.String("out", "out/updater", "output directory for manifests")
	flag.Parse()

	key, err := loadSigningKey()
	if err != nil {
		fatal(err)
	}

	entries, err := os.ReadDir(*configDir)
	if err != nil {
		fatal(fmt.Errorf("read config dir: %w", err))
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fatal(fmt.Errorf("create output dir: %w", err))
	}

	var configs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".example.json") {
			continue
		}
		configs = append(configs, filepath.Join(*configDir, entry.Name()))
	}
	sort.Strings(configs)

	if len(configs) == 0 {
		fatal(errors.New("no channel configuration files found"))
	}

	for _, file := range configs {
		if err := processChannel(file, *outDir, key); err != nil {
			fatal(fmt.Errorf("%s: %w", file, err))
		}
	}
}

func processChannel(path string, outDir string, key ed25519.PrivateKey) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var input channelInput
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	channel, err := updater.NormalizeChannel(input.Channel)
	if err != nil {
		return fmt.Errorf("normalise channel: %w", err)
	}
	if strings.TrimSpace(input.Version) == "" {
		return errors.New("version is required")
	}
	if len(input.Builds) == 0 {
		return errors.New("at least one build must be defined")
	}

	manifest := updater.Manifest{
		Version:  strings.TrimSpace(input.Version),
		Channel:  channel,
		NotesURL: strings.TrimSpace(input.NotesURL),
		Metadata: updater.ManifestMeta{GeneratedAt: time.Now().UTC().Format(time.RFC3339)},
	}

	baseDir := filepath.Dir(path)
	for i, build := range input.Builds {
		if strings.TrimSpace(build.OS) == "" || strings.TrimSpace(build.Arch) == "" {
			return fmt.Errorf("build %d missing os/arch", i)
		}
		full, err := resolveArtifact(build.Full, baseDir)
		if err != nil {
			return fmt.Errorf("build %d full artifact: %w", i, err)
		}
		var delta *updater.Delta
		if build.Delta != nil {
			d, err := resolveDelta(*build.Delta, baseDir, outDir, channel, build)
			if err != nil {
				return fmt.Errorf("build %d delta: %w", i, err)
			}
			delta = &d
		}
		manifest.Builds = append(manifest.Builds, updater.Build{
			OS:    strings.TrimSpace(build.OS),
			Arch:  strings.TrimSpace(build.Arch),
			Full:  full,
			Delta: delta,
		})
	}

	manifestPath := filepath.Join(outDir, channel, "manifest.json")
	if err := os.MkdirAll(filepath.Dir(manifestPath), 0o755); err != nil {
		return fmt.Errorf("create manifest dir: %w", err)
	}
	if err := writeManifest(manifestPath, manifest); err != nil {
		return err
	}
	return writeSignature(manifestPath, key)
}

func resolveArtifact(in artifactInput, baseDir string) (updater.Artifact, error) {
	url := strings.TrimSpace(in.URL)
	if url == "" {
		return updater.Artifact{}, errors.New("artifact url is required")
	}
	sha := strings.TrimSpace(in.SHA256)
	if sha == "" {
		path := resolvePath(in.Path, baseDir)
		if path == "" {
			return updater.Artifact{}, errors.New("artifact sha256 or path must be provided")
		}
		sum, err := fileSHA256(path)
		if err != nil {
			return updater.Artifact{}, err
		}
		sha = sum
	}
	return updater.Artifact{URL: url, SHA256: sha}, nil
}

func resolveDelta(in deltaInput, baseDir, outDir, channel string, build buildInput) (updater.Delta, error) {
	if strings.TrimSpace(in.FromVersion) == "" {
		return updater.Delta{}, errors.New("delta from_version is required")
	}
	patchPath := resolvePath(in.Path, baseDir)
	if patchPath == "" && strings.TrimSpace(in.OldPath) != "" && strings.TrimSpace(in.NewPath) != "" {
		generated, err := generatePatch(in, baseDir, outDir, channel, build)
		if err != nil {
			return updater.Delta{}, err
		}
		patchPath = generated
	}
	art, err := resolveArtifact(artifactInput{URL: in.URL, Path: patchPath, SHA256: in.SHA256}, baseDir)
	if err != nil {
		return updater.Delta{}, err
	}
	return updater.Delta{FromVersion: strings.TrimSpace(in.FromVersion), URL: art.URL, SHA256: art.SHA256}, nil
}

// generatePatch diffs the old and new binaries and writes the resulting
// bsdiff patch under the channel output directory.
func generatePatch(in deltaInput, baseDir, outDir, channel string, build buildInput) (string, error) {
	oldFile, err := os.Open(resolvePath(in.OldPath, baseDir))
	if err != nil {
		return "", fmt.Errorf("open old binary: %w", err)
	}
	defer oldFile.Close()
	newFile, err := os.Open(resolvePath(in.NewPath, baseDir))
	if err != nil {
		return "", fmt.Errorf("open new binary: %w", err)
	}
	defer newFile.Close()

	patchDir := filepath.Join(outDir, channel, "patches")
	if err := os.MkdirAll(patchDir, 0o755); err != nil {
		return "", fmt.Errorf("create patch dir: %w", err)
	}
	name := fmt.Sprintf("bladectl-%s-%s-%s.patch", build.OS, build.Arch, strings.TrimSpace(in.FromVersion))
	patchPath := filepath.Join(patchDir, name)
	patchFile, err := os.Create(patchPath)
	if err != nil {
		return "", fmt.Errorf("create patch: %w", err)
	}
	if err := binarydist.Diff(oldFile, newFile, patchFile); err != nil {
		patchFile.Close()
		os.Remove(patchPath)
		return "", fmt.Errorf("diff binaries: %w", err)
	}
	if err := patchFile.Close(); err != nil {
		return "", fmt.Errorf("close patch: %w", err)
	}
	return patchPath, nil
}

func resolvePath(p string, baseDir string) string {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return trimmed
	}
	return filepath.Join(baseDir, trimmed)
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func writeManifest(path string, manifest updater.Manifest) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "manifest-*.json")
	if err != nil {
		return fmt.Errorf("create temp manifest: %w", err)
	}
	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close manifest: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func writeSignature(manifestPath string, key ed25519.PrivateKey) error {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest for signing: %w", err)
	}
	sig := ed25519.Sign(key, data)
	sigPath := manifestPath + ".sig"
	if err := os.WriteFile(sigPath, []byte(base64.StdEncoding.EncodeToString(sig)), 0o644); err != nil {
		return fmt.Errorf("write signature: %w", err)
	}
	return nil
}

func loadSigningKey() (ed25519.PrivateKey, error) {
	raw := strings.TrimSpace(os.Getenv("BLADE_UPDATER_SIGNING_KEY"))
	if raw == "" {
		return nil, errors.New("BLADE_UPDATER_SIGNING_KEY is not set")
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decode BLADE_UPDATER_SIGNING_KEY: %w", err)
	}
	if len(decoded) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("BLADE_UPDATER_SIGNING_KEY has invalid length %d", len(decoded))
	}
	return ed25519.PrivateKey(decoded), nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
