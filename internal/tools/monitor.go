package tools

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/distatus/battery"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	gnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/shirou/gopsutil/v4/sensors"

	"github.com/amadeusai/amadeus/internal/schema"
)

// AlertThresholds are the usage percentages above which check_system_alerts
// reports a problem.
type AlertThresholds struct {
	CPU    float64
	Memory float64
	Disk   float64
}

const cpuSampleInterval = 500 * time.Millisecond

func gb(bytes uint64) float64 { return float64(bytes) / (1 << 30) }

func cpuUsage(ctx context.Context) (string, error) {
	percents, err := cpu.PercentWithContext(ctx, cpuSampleInterval, false)
	if err != nil || len(percents) == 0 {
		return "", fmt.Errorf("read CPU usage: %w", err)
	}
	cores, _ := cpu.CountsWithContext(ctx, true)
	return fmt.Sprintf("CPU usage is %.1f%% across %d cores.", percents[0], cores), nil
}

func memoryUsage(ctx context.Context) (string, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("read memory usage: %w", err)
	}
	return fmt.Sprintf("Memory usage is %.1f%%: %.1f GB used of %.1f GB, %.1f GB available.",
		vm.UsedPercent, gb(vm.Used), gb(vm.Total), gb(vm.Available)), nil
}

func diskUsage(ctx context.Context, path string) (string, error) {
	if path == "" {
		path = "/"
	}
	du, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return "", fmt.Errorf("read disk usage for %s: %w", path, err)
	}
	return fmt.Sprintf("Disk %s is %.1f%% full: %.1f GB used of %.1f GB, %.1f GB free.",
		path, du.UsedPercent, gb(du.Used), gb(du.Total), gb(du.Free)), nil
}

func batteryInfo() (string, error) {
	batteries, err := battery.GetAll()
	if err != nil || len(batteries) == 0 {
		return "No battery detected; this machine likely runs on mains power.", nil
	}
	b := batteries[0]
	percent := 0.0
	if b.Full > 0 {
		percent = b.Current / b.Full * 100
	}
	return fmt.Sprintf("Battery is at %.0f%% (%s).", percent, strings.ToLower(b.State.String())), nil
}

func networkInfo(ctx context.Context) (string, error) {
	counters, err := gnet.IOCountersWithContext(ctx, false)
	if err != nil || len(counters) == 0 {
		return "", fmt.Errorf("read network counters: %w", err)
	}
	ifaces, err := gnet.InterfacesWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("list network interfaces: %w", err)
	}

	var active []string
	for _, iface := range ifaces {
		up := false
		for _, flag := range iface.Flags {
			if flag == "up" {
				up = true
			}
		}
		if up && iface.Name != "lo" && len(iface.Addrs) > 0 {
			active = append(active, fmt.Sprintf("%s (%s)", iface.Name, iface.Addrs[0].Addr))
		}
	}

	total := counters[0]
	summary := fmt.Sprintf("Network: %.1f MB sent, %.1f MB received since boot.",
		float64(total.BytesSent)/(1<<20), float64(total.BytesRecv)/(1<<20))
	if len(active) > 0 {
		summary += " Active interfaces: " + strings.Join(active, ", ") + "."
	}
	return summary, nil
}

func systemUptime(ctx context.Context) (string, error) {
	secs, err := host.UptimeWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("read uptime: %w", err)
	}
	d := time.Duration(secs) * time.Second
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("System has been up for %d days, %d hours, and %d minutes.", days, hours, minutes), nil
	}
	return fmt.Sprintf("System has been up for %d hours and %d minutes.", hours, minutes), nil
}

func runningProcesses(ctx context.Context, limit int) (string, error) {
	if limit <= 0 {
		limit = 5
	}
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("list processes: %w", err)
	}

	type procInfo struct {
		name string
		cpu  float64
		mem  float32
	}
	var infos []procInfo
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || name == "" {
			continue
		}
		cpuPct, _ := p.CPUPercentWithContext(ctx)
		memPct, _ := p.MemoryPercentWithContext(ctx)
		infos = append(infos, procInfo{name, cpuPct, memPct})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].cpu > infos[j].cpu })

	var b strings.Builder
	fmt.Fprintf(&b, "%d processes running. Top %d by CPU:\n", len(infos), limit)
	for i, pi := range infos {
		if i >= limit {
			break
		}
		fmt.Fprintf(&b, "  %s: %.1f%% CPU, %.1f%% memory\n", pi.name, pi.cpu, pi.mem)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func gpuStats(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "nvidia-smi",
		"--query-gpu=name,utilization.gpu,memory.used,memory.total,temperature.gpu",
		"--format=csv,noheader,nounits").Output()
	if err != nil {
		return "No GPU stats available; nvidia-smi not found or no NVIDIA GPU present.", nil
	}
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		fields := strings.Split(line, ", ")
		if len(fields) < 5 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s%% utilization, %s/%s MB memory, %s°C",
			fields[0], fields[1], fields[2], fields[3], fields[4]))
	}
	if len(lines) == 0 {
		return "No GPU stats available.", nil
	}
	return strings.Join(lines, "\n"), nil
}

func temperatureSensors(ctx context.Context) (string, error) {
	temps, err := sensors.TemperaturesWithContext(ctx)
	if err != nil || len(temps) == 0 {
		return "No temperature sensors available on this machine.", nil
	}
	var lines []string
	for _, t := range temps {
		if t.Temperature <= 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s: %.1f°C", t.SensorKey, t.Temperature))
		if len(lines) >= 10 {
			break
		}
	}
	if len(lines) == 0 {
		return "No temperature sensors available on this machine.", nil
	}
	return "Temperature sensors:\n" + strings.Join(lines, "\n"), nil
}

func systemAlerts(ctx context.Context, th AlertThresholds) (string, error) {
	var alerts []string

	if percents, err := cpu.PercentWithContext(ctx, cpuSampleInterval, false); err == nil && len(percents) > 0 {
		if percents[0] > th.CPU {
			alerts = append(alerts, fmt.Sprintf("CPU usage is high at %.1f%%", percents[0]))
		}
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm.UsedPercent > th.Memory {
		alerts = append(alerts, fmt.Sprintf("memory usage is high at %.1f%%", vm.UsedPercent))
	}
	if du, err := disk.UsageWithContext(ctx, "/"); err == nil && du.UsedPercent > th.Disk {
		alerts = append(alerts, fmt.Sprintf("disk is %.1f%% full", du.UsedPercent))
	}
	if batteries, err := battery.GetAll(); err == nil && len(batteries) > 0 {
		b := batteries[0]
		if b.Full > 0 && b.State.String() != "Charging" && b.Current/b.Full*100 < 20 {
			alerts = append(alerts, fmt.Sprintf("battery is low at %.0f%%", b.Current/b.Full*100))
		}
	}

	if len(alerts) == 0 {
		return "All clear. CPU, memory, disk, and battery look healthy.", nil
	}
	return "Heads up: " + strings.Join(alerts, "; ") + ".", nil
}

// SystemSummary is a compact snapshot used by the daily brief and status views.
func SystemSummary(ctx context.Context) string {
	var parts []string
	if percents, err := cpu.PercentWithContext(ctx, cpuSampleInterval, false); err == nil && len(percents) > 0 {
		parts = append(parts, fmt.Sprintf("CPU %.0f%%", percents[0]))
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		parts = append(parts, fmt.Sprintf("memory %.0f%%", vm.UsedPercent))
	}
	if du, err := disk.UsageWithContext(ctx, "/"); err == nil {
		parts = append(parts, fmt.Sprintf("disk %.0f%%", du.UsedPercent))
	}
	if len(parts) == 0 {
		return "system stats unavailable"
	}
	return strings.Join(parts, ", ")
}

// MonitorTools returns the system monitoring tool set.
func MonitorTools(thresholds AlertThresholds) []*schema.ToolDefinition {
	return []*schema.ToolDefinition{
		{
			Name:        "get_cpu_usage",
			Description: "Gets current CPU usage percentage",
			Category:    schema.CategorySystem,
			Handler: func(ctx context.Context, _ map[string]any) (string, error) {
				return cpuUsage(ctx)
			},
		},
		{
			Name:        "get_memory_usage",
			Description: "Gets current RAM usage",
			Category:    schema.CategorySystem,
			Handler: func(ctx context.Context, _ map[string]any) (string, error) {
				return memoryUsage(ctx)
			},
		},
		{
			Name:        "get_disk_usage",
			Description: "Gets disk space usage. Args: path (str, optional)",
			Category:    schema.CategorySystem,
			Parameters: map[string]schema.ParamSpec{
				"path": {Type: schema.ParamString, Description: "Mount point to check, defaults to /"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				return diskUsage(ctx, argString(args, "path", ""))
			},
		},
		{
			Name:        "get_battery_info",
			Description: "Gets battery level and charging state",
			Category:    schema.CategorySystem,
			Handler: func(_ context.Context, _ map[string]any) (string, error) {
				return batteryInfo()
			},
		},
		{
			Name:        "get_network_info",
			Description: "Gets network interfaces and traffic counters",
			Category:    schema.CategorySystem,
			Handler: func(ctx context.Context, _ map[string]any) (string, error) {
				return networkInfo(ctx)
			},
		},
		{
			Name:        "get_system_uptime",
			Description: "Gets how long the system has been running",
			Category:    schema.CategorySystem,
			Handler: func(ctx context.Context, _ map[string]any) (string, error) {
				return systemUptime(ctx)
			},
		},
		{
			Name:        "get_running_processes",
			Description: "Lists the top processes by CPU usage. Args: limit (int, optional)",
			Category:    schema.CategorySystem,
			Parameters: map[string]schema.ParamSpec{
				"limit": {Type: schema.ParamInteger, Description: "How many processes to show, defaults to 5"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				return runningProcesses(ctx, argInt(args, "limit", 0))
			},
		},
		{
			Name:        "get_gpu_stats",
			Description: "Gets GPU utilization, memory, and temperature",
			Category:    schema.CategorySystem,
			Handler: func(ctx context.Context, _ map[string]any) (string, error) {
				return gpuStats(ctx)
			},
		},
		{
			Name:        "get_temperature_sensors",
			Description: "Reads hardware temperature sensors",
			Category:    schema.CategorySystem,
			Handler: func(ctx context.Context, _ map[string]any) (string, error) {
				return temperatureSensors(ctx)
			},
		},
		{
			Name:        "check_system_alerts",
			Description: "Checks CPU, memory, disk, and battery against alert thresholds",
			Category:    schema.CategorySystem,
			Handler: func(ctx context.Context, _ map[string]any) (string, error) {
				return systemAlerts(ctx, thresholds)
			},
		},
	}
}
