package still

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// resolutionRegex matches strings like "3456 x 2234", "2880 x 1864 Retina" or "1920x1080".
var resolutionRegex = regexp.MustCompile(`(\d+)\s*x\s*(\d+)`)

// systemProfilerOutput represents the nested structure of system_profiler -json
type systemProfilerOutput struct {
	Displays []gpuInfo `json:"SPDisplaysDataType"`
}

type gpuInfo struct {
	NDRVs []displayInfo `json:"spdisplays_ndrvs"`
}

type displayInfo struct {
	Resolution string `json:"_spdisplays_pixels"` // e.g. "3420 x 2214"
	Main       string `json:"spdisplays_main"`    // "spdisplays_yes"
}

// parseProfilerJSON returns the pixel size of the main display reported by
// `system_profiler SPDisplaysDataType -json`.
func parseProfilerJSON(data []byte) (int, int, error) {
	var profiler systemProfilerOutput
	if err := json.Unmarshal(data, &profiler); err != nil {
		return 0, 0, fmt.Errorf("decoding system_profiler JSON: %w", err)
	}

	for _, gpu := range profiler.Displays {
		for _, display := range gpu.NDRVs {
			if display.Main == "spdisplays_yes" {
				return parseResolution(display.Resolution)
			}
		}
	}

	// No main display flagged, use the first one
	if len(profiler.Displays) > 0 && len(profiler.Displays[0].NDRVs) > 0 {
		return parseResolution(profiler.Displays[0].NDRVs[0].Resolution)
	}

	return 0, 0, fmt.Errorf("no displays found in system_profiler output")
}

// parseXdpyinfo extracts the screen size from the "dimensions:" line of xdpyinfo.
func parseXdpyinfo(out string) (int, int, error) {
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "dimensions:") {
			return parseResolution(line)
		}
	}
	return 0, 0, fmt.Errorf("failed to parse screen resolution")
}

func parseResolution(s string) (int, int, error) {
	matches := resolutionRegex.FindStringSubmatch(s)
	if len(matches) < 3 {
		return 0, 0, fmt.Errorf("failed to parse resolution from string: %s", s)
	}

	width, errW := strconv.Atoi(matches[1])
	height, errH := strconv.Atoi(matches[2])
	if errW != nil || errH != nil {
		return 0, 0, fmt.Errorf("failed to convert dimensions: %v, %v", errW, errH)
	}
	return width, height, nil
}
