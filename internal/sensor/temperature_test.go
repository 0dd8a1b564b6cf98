package sensor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const w1SampleGood = `72 01 4b 46 7f ff 0e 10 57 : crc=57 YES
72 01 4b 46 7f ff 0e 10 57 t=23125
`

const w1SampleCRCFail = `72 01 4b 46 7f ff 0e 10 57 : crc=57 NO
72 01 4b 46 7f ff 0e 10 57 t=23125
`

func TestParseW1Slave(t *testing.T) {
	milli, err := parseW1Slave(w1SampleGood)
	require.NoError(t, err)
	assert.Equal(t, 23125, milli)
}

func TestParseW1SlaveNegative(t *testing.T) {
	content := "aa bb : crc=57 YES\naa bb t=-1250\n"
	milli, err := parseW1Slave(content)
	require.NoError(t, err)
	assert.Equal(t, -1250, milli)
}

func TestParseW1SlaveCRCNotConfirmed(t *testing.T) {
	_, err := parseW1Slave(w1SampleCRCFail)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoReading))
}

func TestParseW1SlaveMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"one line", "aa bb : crc=57 YES"},
		{"no t field", "aa bb : crc=57 YES\naa bb cc dd\n"},
		{"bad t value", "aa bb : crc=57 YES\naa bb t=hot\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseW1Slave(tt.content)
			require.Error(t, err)
		})
	}
}

func TestEngineTempSourceRead(t *testing.T) {
	dir := t.TempDir()
	deviceDir := filepath.Join(dir, "28-0316a2791dff")
	require.NoError(t, os.MkdirAll(deviceDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(deviceDir, "w1_slave"), []byte(w1SampleGood), 0o644))

	src := NewEngineTempSource(dir, time.Second)
	reading, err := src.Read(context.Background())
	require.NoError(t, err)
	require.NotNil(t, reading.Scalar)
	assert.InDelta(t, 23.125, *reading.Scalar, 1e-9)
}

func TestEngineTempSourceNoDevice(t *testing.T) {
	src := NewEngineTempSource(t.TempDir(), time.Second)

	_, err := src.Read(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestDiscoverW1SlaveIgnoresOtherFamilies(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "w1_bus_master1"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "10-0008001a4b2c"), 0o755))

	assert.Equal(t, "", discoverW1Slave(dir))
}
