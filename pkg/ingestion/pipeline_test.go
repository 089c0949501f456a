// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingestion

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mstest "github.com/kraklabs/methodsig/internal/testing"
	"github.com/kraklabs/methodsig/pkg/sigparse"
)

func TestPipelineRun_Counts(t *testing.T) {
	p := NewPipeline(DefaultConfig(), nil)

	report, err := p.Run(context.Background(), []Input{
		{Source: "arg", Text: "public void log(String message, int level)"},
		{Source: "arg", Text: "int size()"},
		{Source: "arg", Text: "void run(int)"},
		{Source: "arg", Text: "a b c d()"},
		{Source: "arg", Text: "void f(int a)", Unsupported: "varargs"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Parsed)
	assert.Equal(t, 2, report.Malformed)
	assert.Equal(t, 1, report.Rejected)
	assert.Equal(t, map[sigparse.Stage]int{
		sigparse.StageArgument: 1,
		sigparse.StagePrefix:   1,
	}, report.MalformedByStage)
	assert.False(t, report.OK())
	require.Len(t, report.Results, 5)
	assert.Equal(t, StatusParsed, report.Results[0].Status)
	assert.Equal(t, StatusRejected, report.Results[4].Status)
}

func TestPipelineRun_Empty(t *testing.T) {
	report, err := NewPipeline(DefaultConfig(), nil).Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Empty(t, report.Results)
	assert.True(t, report.OK())
}

func TestPipelineRun_PreservesOrderAcrossWorkers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 8
	p := NewPipeline(cfg, nil)

	var inputs []Input
	for i := 0; i < 200; i++ {
		text := fmt.Sprintf("int m%d(int a)", i)
		if i%7 == 0 {
			text = fmt.Sprintf("int m%d(int)", i)
		}
		inputs = append(inputs, Input{Source: "arg", Line: i + 1, Text: text})
	}

	report, err := p.Run(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, report.Results, len(inputs))

	for i, r := range report.Results {
		assert.Equal(t, i+1, r.Line)
		if i%7 == 0 {
			assert.Equal(t, StatusMalformed, r.Status, "input %d", i)
			continue
		}
		require.Equal(t, StatusParsed, r.Status, "input %d", i)
		assert.Equal(t, fmt.Sprintf("m%d", i), r.Signature.MethodName)
	}
	assert.Equal(t, 29, report.Malformed)
	assert.Equal(t, 171, report.Parsed)
}

func TestPipelineRun_SignatureLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSignatureBytes = 16
	p := NewPipeline(cfg, nil)

	report, err := p.Run(context.Background(), []Input{
		{Text: "int f()"},
		{Text: "public void longerThanSixteen(int a)"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Parsed)
	assert.Equal(t, 1, report.Rejected)
	assert.Equal(t, "signature exceeds 16 bytes", report.Results[1].Error)
}

func TestPipelineRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPipeline(DefaultConfig(), nil).Run(ctx, []Input{{Text: "int f()"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipelineScan(t *testing.T) {
	root := mstest.WriteJavaTree(t, map[string]string{
		"src/Api.java": mstest.JavaClass("Api",
			"public void ping()",
			"private int size(String key, int start)",
			"void put(Map<String, Integer> m)",
		),
		"src/Util.java": mstest.JavaClass("Util",
			"static <T> T first(T[] items)",
		),
		"target/Gen.java": mstest.JavaClass("Gen", "void generated()"),
	})

	var seen int32
	loaded := -1
	cfg := DefaultConfig()
	cfg.OnLoad = func(n int) { loaded = n }
	cfg.OnFile = func(string) { atomic.AddInt32(&seen, 1) }
	p := NewPipeline(cfg, nil)

	report, err := p.Scan(context.Background(), []string{root})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Files)
	assert.Equal(t, 2, loaded)
	assert.Equal(t, int32(2), atomic.LoadInt32(&seen))
	assert.Zero(t, report.FileErrors)
	assert.Equal(t, []string{SkipExcludedDir}, mstest.SortedKeys(report.SkipReasons))
	assert.Equal(t, 1, report.SkipReasons[SkipExcludedDir])

	require.Len(t, report.Results, 4)
	byName := make(map[string]Result)
	for _, r := range report.Results {
		byName[r.Text] = r
	}

	ping := byName["public void ping()"]
	require.Equal(t, StatusParsed, ping.Status)
	assert.Equal(t, filepath.Join(root, "src", "Api.java"), ping.Source)
	assert.Equal(t, 2, ping.Line)
	assert.Empty(t, ping.Signature.Arguments)

	size := byName["private int size(String key, int start)"]
	require.Equal(t, StatusParsed, size.Status)
	assert.Equal(t, "private", size.Signature.AccessModifier)

	put := byName["void put(Map<String, Integer> m)"]
	assert.Equal(t, StatusRejected, put.Status)
	assert.Equal(t, "unsupported: generic type Map<String, Integer>", put.Error)
	assert.ErrorIs(t, put.Err, ErrUnsupported)

	first := byName["T first(T[] items)"]
	assert.Equal(t, StatusRejected, first.Status)
	assert.Equal(t, "unsupported: type parameters <T>", first.Error)

	assert.Equal(t, 2, report.Parsed)
	assert.Zero(t, report.Malformed)
	assert.Equal(t, 2, report.Rejected)
	assert.Empty(t, report.MalformedByStage)
}

func TestPipelineScan_MissingPath(t *testing.T) {
	_, err := NewPipeline(DefaultConfig(), nil).Scan(context.Background(), []string{filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}

func TestNewPipeline_NormalizesWorkers(t *testing.T) {
	p := NewPipeline(Config{Workers: -3}, nil)
	assert.Equal(t, 1, p.config.Workers)
}
