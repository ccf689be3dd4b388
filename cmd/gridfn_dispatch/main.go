// gridfn_dispatch binds a grid argument from command-line flags, dispatches a
// kernel over a launch grid, and reports what was bound and computed. It is a
// diagnostic tool: the kernel just folds every materialized component into a
// running sum.
//
// Example:
//
//	gridfn_dispatch -grid=64,64 -shape=vector -dtype=float32 \
//	    -offset=10,20 -stride=2,3
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/janpfeifer/must"
	"github.com/x448/float16"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"

	"github.com/gridfn/gridfn/binding"
	"github.com/gridfn/gridfn/dispatch"
	"github.com/gridfn/gridfn/types/grids"
	"github.com/gridfn/gridfn/types/reprs"
)

var (
	flagGrid   = flag.String("grid", "16,16", "Launch grid extents, comma-separated, one per axis.")
	flagShape  = flag.String("shape", "array", "Representation shape of the bound parameter: scalar, array or vector.")
	flagDType  = flag.String("dtype", "int32", "Element dtype of the bound parameter, e.g. int32, float32, float16.")
	flagDim    = flag.String("dim", "wildcard", "Requested dimensionality: a number, or \"wildcard\" for the type's natural dimension.")
	flagOffset = flag.String("offset", "0,0", "Per-axis offsets, comma-separated.")
	flagStride = flag.String("stride", "1,1", "Per-axis strides, comma-separated. Zero broadcasts an axis, negative reverses it.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if flag.NArg() > 0 {
		klog.Errorf("Unexpected arguments %q. See 'gridfn_dispatch -help'.", flag.Args())
		os.Exit(1)
	}

	grid := parseInts(*flagGrid)
	offset := parseInts(*flagOffset)
	stride := parseInts(*flagStride)
	dtype := must.M1(dtypes.DTypeString(*flagDType))

	param := paramType(*flagShape, dtype, len(offset))
	dim := binding.DimWildcard
	if *flagDim != "wildcard" {
		dim = must.M1(strconv.Atoi(*flagDim))
	}

	b := must.M1(binding.Bind("arg0", param, dim, offset, stride))

	total := 1
	for _, extent := range grid {
		total *= extent
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Dispatching: "),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("invocations"),
		progressbar.OptionClearOnFinish(),
	)

	var invocations atomic.Int64
	var sum atomic.Int64
	kernel := func(coord grids.Coordinate, args []any) {
		invocations.Add(1)
		sum.Add(fold(args[0]))
		_ = bar.Add(1)
	}
	must.M(dispatch.Launch(grid, kernel, b))
	fmt.Println()
	report(b, grid, invocations.Load(), sum.Load())
}

func parseInts(s string) []int {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		out = append(out, must.M1(strconv.Atoi(strings.TrimSpace(part))))
	}
	return out
}

func paramType(shape string, dtype dtypes.DType, dim int) reprs.Repr {
	switch shape {
	case "scalar":
		return reprs.ScalarOf(dtype)
	case "array":
		return reprs.ArrayOf(dtype, dim)
	case "vector":
		return reprs.VectorOf(dtype, dim)
	default:
		klog.Errorf("Unknown -shape=%q, must be scalar, array or vector.", shape)
		os.Exit(1)
		return reprs.Repr{}
	}
}

// fold collapses a materialized value into an int64, just so the demo kernel
// has something to aggregate. Only the dtypes the CLI exposes are handled.
func fold(value any) (total int64) {
	switch v := value.(type) {
	case int32:
		return int64(v)
	case int64:
		return v
	case float32:
		return int64(v)
	case float64:
		return int64(v)
	case []int32:
		for _, e := range v {
			total += int64(e)
		}
	case []int64:
		for _, e := range v {
			total += e
		}
	case []float32:
		for _, e := range v {
			total += int64(e)
		}
	case []float64:
		for _, e := range v {
			total += int64(e)
		}
	case float16.Float16:
		return int64(v.Float32())
	case []float16.Float16:
		for _, e := range v {
			total += int64(e.Float32())
		}
	case bfloat16.BFloat16:
		return int64(v.Float32())
	case []bfloat16.BFloat16:
		for _, e := range v {
			total += int64(e.Float32())
		}
	default:
		klog.Exitf("gridfn_dispatch kernel cannot fold %T -- use an int32, int64, float16, bfloat16, float32 or float64 binding", value)
	}
	return
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func report(b *binding.Binding, grid []int, invocations, sum int64) {
	table := lgtable.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row < 0 {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("Binding", "Representation", "Descriptor").
		Row(b.Name(), b.Repr().String(), b.Descriptor().String())
	fmt.Println(table)
	fmt.Printf("Grid %v: %s invocations, component sum %s\n",
		grid, humanize.Comma(invocations), humanize.Comma(sum))
}
