package diag

import (
	"fmt"
	"runtime"

	"github.com/jaypipes/ghw"
	"github.com/jaypipes/ghw/pkg/gpu"

	"github.com/gamepadhid/core/internal/logger"
)

// HostInfo is a point-in-time snapshot of the machine the core is running
// on, attached to diagnostics sessions so a captured event stream can be
// correlated with the hardware that produced it.
type HostInfo struct {
	OS       string `json:"os"`
	Arch     string `json:"arch"`
	GPUModel string `json:"gpuModel"`
	GPUBrand string `json:"gpuBrand"`
}

// ProbeHost gathers HostInfo. GPU detection failures are logged and leave
// GPUModel/GPUBrand empty rather than failing the probe: diagnostics are
// best-effort, never load-bearing for the core's operation.
func ProbeHost(log logger.Interface) HostInfo {
	info := HostInfo{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	card, err := primaryGPU()
	if err != nil {
		log.Warn(fmt.Sprintf("diag: gpu probe failed: %v", err))
		return info
	}
	if card != nil {
		info.GPUModel = card.DeviceInfo.Product.Name
		info.GPUBrand = card.DeviceInfo.Vendor.Name
	}
	return info
}

func primaryGPU() (*gpu.GraphicsCard, error) {
	g, err := ghw.GPU()
	if err != nil {
		return nil, fmt.Errorf("gpu probe: %w", err)
	}
	if len(g.GraphicsCards) == 0 {
		return nil, nil
	}
	return g.GraphicsCards[0], nil
}
