package export

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/neubond/emgdash/internal/emg"
	"github.com/neubond/emgdash/internal/models"
)

// The bundle is a zip container of NumPy arrays plus a JSON record set:
//
//	sessions.json     session metadata (format marker + records)
//	emg/<id>.npy      float64 channels x samples
//	phase/<id>.npy    int64 per-sample markers
//	time/<id>.npy     int64 per-sample epoch microseconds
//
// float64 samples survive the round trip bit for bit, which is the whole
// point of shipping .npy instead of text.
const bundleFormat = "emgdash-bundle/1"

type bundleManifest struct {
	Format   string          `json:"format"`
	Sessions []bundleSession `json:"sessions"`
}

type bundleSession struct {
	ID         string  `json:"id"`
	PatientID  string  `json:"patient_id"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	SampleRate float64 `json:"sample_rate_hz"`
	Channels   int     `json:"channels"`
	Samples    int     `json:"samples"`
}

// WriteBundle serializes the bundle into the zip container, preserving
// channel and sample order exactly as loaded.
func WriteBundle(w io.Writer, bundle models.ExportBundle) error {
	if len(bundle.Sessions) == 0 {
		return ErrEmptyBundle
	}

	manifest := bundleManifest{Format: bundleFormat}
	zw := zip.NewWriter(w)

	for _, session := range bundle.Sessions {
		if err := validateSession(session); err != nil {
			return err
		}

		n := session.SampleCount()
		if n == 0 {
			return fmt.Errorf("%w: session %s has no samples", ErrSerialization, session.ID)
		}
		manifest.Sessions = append(manifest.Sessions, bundleSession{
			ID:         session.ID,
			PatientID:  session.PatientID,
			StartTime:  session.StartTime.UTC().Format(time.RFC3339Nano),
			EndTime:    session.EndTime.UTC().Format(time.RFC3339Nano),
			SampleRate: session.SampleRate,
			Channels:   len(session.Channels),
			Samples:    n,
		})

		channels := append([]models.ChannelSeries(nil), session.Channels...)
		sort.Slice(channels, func(i, j int) bool { return channels[i].Index < channels[j].Index })

		flat := make([]float64, 0, len(channels)*n)
		for _, ch := range channels {
			flat = append(flat, ch.Samples...)
		}
		if err := writeNpy(zw, "emg/"+session.ID+".npy", mat.NewDense(len(channels), n, flat)); err != nil {
			return err
		}

		markers := emg.ExpandIntervals(session.Phases, n)
		phase := make([]int64, n)
		for i, m := range markers {
			phase[i] = int64(m)
		}
		if err := writeNpy(zw, "phase/"+session.ID+".npy", phase); err != nil {
			return err
		}

		micros := make([]int64, n)
		for i, ts := range session.Timestamps {
			micros[i] = ts.UnixMicro()
		}
		if err := writeNpy(zw, "time/"+session.ID+".npy", micros); err != nil {
			return err
		}
	}

	mw, err := zw.CreateHeader(&zip.FileHeader{Name: "sessions.json", Method: zip.Deflate})
	if err != nil {
		return err
	}
	enc := json.NewEncoder(mw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	return zw.Close()
}

func writeNpy(zw *zip.Writer, name string, val interface{}) error {
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	if err := npyio.Write(w, val); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSerialization, name, err)
	}
	return nil
}

// ReadBundle is the file-upload collaborator: it deserializes a bundle
// back into the raw record shape the loader accepts.
func ReadBundle(r io.ReaderAt, size int64) ([]models.RawRecord, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFileType, err)
	}

	manifest, err := readManifest(zr)
	if err != nil {
		return nil, err
	}

	records := make([]models.RawRecord, 0, len(manifest.Sessions))
	for _, meta := range manifest.Sessions {
		rec, err := readSession(zr, meta)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadBundleFile reads a bundle from disk.
func ReadBundleFile(path string) ([]models.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return ReadBundle(f, fi.Size())
}

func readManifest(zr *zip.Reader) (*bundleManifest, error) {
	f, err := zr.Open("sessions.json")
	if err != nil {
		return nil, fmt.Errorf("%w: no sessions.json entry", ErrUnknownFileType)
	}
	defer f.Close()

	var manifest bundleManifest
	if err := json.NewDecoder(f).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFileType, err)
	}
	if manifest.Format != bundleFormat {
		return nil, fmt.Errorf("%w: format %q", ErrUnknownFileType, manifest.Format)
	}
	return &manifest, nil
}

func readSession(zr *zip.Reader, meta bundleSession) (models.RawRecord, error) {
	var rec models.RawRecord
	rec.ID = meta.ID
	rec.PatientID = meta.PatientID
	rec.SampleRate = meta.SampleRate

	var err error
	rec.StartTime, err = time.Parse(time.RFC3339Nano, meta.StartTime)
	if err != nil {
		return rec, fmt.Errorf("%w: session %s start_time: %v", ErrSerialization, meta.ID, err)
	}
	rec.EndTime, err = time.Parse(time.RFC3339Nano, meta.EndTime)
	if err != nil {
		return rec, fmt.Errorf("%w: session %s end_time: %v", ErrSerialization, meta.ID, err)
	}

	var dense mat.Dense
	if err := readNpy(zr, "emg/"+meta.ID+".npy", &dense); err != nil {
		return rec, err
	}
	rows, _ := dense.Dims()
	rec.Channels = make([][]float64, rows)
	for i := 0; i < rows; i++ {
		rec.Channels[i] = append([]float64(nil), dense.RawRowView(i)...)
	}

	var phase []int64
	if err := readNpy(zr, "phase/"+meta.ID+".npy", &phase); err != nil {
		return rec, err
	}
	rec.PhaseMarkers = make([]int, len(phase))
	for i, m := range phase {
		rec.PhaseMarkers[i] = int(m)
	}

	var micros []int64
	if err := readNpy(zr, "time/"+meta.ID+".npy", &micros); err != nil {
		return rec, err
	}
	rec.Timestamps = make([]time.Time, len(micros))
	for i, us := range micros {
		rec.Timestamps[i] = time.UnixMicro(us).UTC()
	}

	return rec, nil
}

func readNpy(zr *zip.Reader, name string, ptr interface{}) error {
	f, err := zr.Open(name)
	if err != nil {
		return fmt.Errorf("%w: missing entry %s", ErrSerialization, name)
	}
	defer f.Close()

	if err := npyio.Read(f, ptr); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSerialization, name, err)
	}
	return nil
}
