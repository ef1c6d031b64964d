// internal/catalog/builtin.go
package catalog

import "fmt"

// Built-in product tables. These mirror the register lists shipped in the
// device firmware; the core accepts any materialized catalog, the
// built-ins just save the common case a table file.

// Product identifiers accepted by ForProduct.
const (
	ProductHyPR6000      = "hypr6000"      // 24VDC HyPR 6000 (20-0104024)
	ProductProVerter5000 = "proverter5000" // 24VDC PRO-Verter 5000-220 AFF1 (20-0104033)
)

// ForProduct returns the built-in catalog for a product identifier.
func ForProduct(product string) (*Catalog, error) {
	switch product {
	case ProductHyPR6000:
		return New(product, hypr6000Registers)
	case ProductProVerter5000:
		return New(product, proVerter5000Registers)
	default:
		return nil, fmt.Errorf("catalog: unknown product %q", product)
	}
}

// DefaultBaudRate returns the factory baud rate for a built-in product,
// or 0 when the product is unknown.
func DefaultBaudRate(product string) int {
	switch product {
	case ProductHyPR6000:
		return 57600
	case ProductProVerter5000:
		return 9600
	default:
		return 0
	}
}

// hypr6000Registers must match the register list in the HyPR 6000
// firmware's RMAGS.h.
var hypr6000Registers = []Descriptor{
	{Name: "BIT", Address: 0, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadWrite},
	{Name: "TOTAL_ERRORS", Address: 1, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG_HEAD", Address: 2, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG_TAIL", Address: 3, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadWrite},
	{Name: "LOG_STATUS", Address: 4, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG_LEVEL", Address: 5, Type: Uint16, Min: 0, Max: 15, Access: ReadOnly},
	{Name: "LOG_CODE", Address: 6, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG_DEVICE", Address: 7, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG_MSG_LEN", Address: 8, Type: Uint16, Unit: "B", Min: 0, Max: 8, Access: ReadOnly},
	{Name: "LOG_VALUE0", Address: 9, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG_VALUE1", Address: 10, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG_VALUE2", Address: 11, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG_VALUE3", Address: 12, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG1_LEVEL", Address: 13, Type: Uint16, Min: 0, Max: 15, Access: ReadOnly},
	{Name: "LOG1_CODE", Address: 14, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG1_DEVICE", Address: 15, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG1_MSG_LEN", Address: 16, Type: Uint16, Unit: "B", Min: 0, Max: 8, Access: ReadOnly},
	{Name: "LOG1_VALUE0", Address: 17, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG1_VALUE1", Address: 18, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG1_VALUE2", Address: 19, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG1_VALUE3", Address: 20, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG2_LEVEL", Address: 21, Type: Uint16, Min: 0, Max: 15, Access: ReadOnly},
	{Name: "LOG2_CODE", Address: 22, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG2_DEVICE", Address: 23, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG2_MSG_LEN", Address: 24, Type: Uint16, Unit: "B", Min: 0, Max: 8, Access: ReadOnly},
	{Name: "LOG2_VALUE0", Address: 25, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG2_VALUE1", Address: 26, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG2_VALUE2", Address: 27, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG2_VALUE3", Address: 28, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG3_LEVEL", Address: 29, Type: Uint16, Min: 0, Max: 15, Access: ReadOnly},
	{Name: "LOG3_CODE", Address: 30, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG3_DEVICE", Address: 31, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG3_MSG_LEN", Address: 32, Type: Uint16, Unit: "B", Min: 0, Max: 8, Access: ReadOnly},
	{Name: "LOG3_VALUE0", Address: 33, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG3_VALUE1", Address: 34, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG3_VALUE2", Address: 35, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "LOG3_VALUE3", Address: 36, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "START_VOLTAGE", Address: 37, Type: Uint16, Unit: "cV", Min: 2000, Max: 3200, Access: ReadWrite},
	{Name: "START_DELAY", Address: 38, Type: Uint16, Unit: "s", Min: 0, Max: 600, Access: ReadWrite},
	{Name: "STOP_VOLTAGE", Address: 39, Type: Uint16, Unit: "cV", Min: 2000, Max: 3200, Access: ReadWrite},
	{Name: "STOP_DELAY", Address: 40, Type: Uint16, Unit: "s", Min: 0, Max: 600, Access: ReadWrite},
	{Name: "CRANK_TIMEOUT", Address: 41, Type: Uint16, Unit: "s", Min: 0, Max: 120, Access: ReadWrite},
	{Name: "REGULATED_VOLTAGE", Address: 42, Type: Uint16, Unit: "cV", Min: 2000, Max: 3200, Access: ReadWrite},
	{Name: "MAX_CHARGING_CURRENT", Address: 43, Type: Uint16, Unit: "A", Min: 0, Max: 250, Access: ReadWrite},
	{Name: "LVCO", Address: 44, Type: Uint16, Unit: "cV", Min: 1800, Max: 2800, Access: ReadWrite},
	{Name: "BUS_VOLTAGE", Address: 45, Type: Uint16, Unit: "cV", Min: 0, Max: 4000, Access: ReadOnly},
	{Name: "CURRENTS", Address: 46, Type: Uint16, Unit: "A", Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "GEN_CONTROL", Address: 47, Type: Uint16, Min: 0, Max: 5, Access: ReadWrite},
	{Name: "AGS_STATUS", Address: 48, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "AC_INPUT", Address: 49, Type: Bool, Min: 0, Max: 1, Access: ReadOnly},
	{Name: "AMMPS_RESPONSE", Address: 50, Type: Uint16, Min: 0, Max: 0x7FFF, Access: ReadOnly},
	{Name: "GEN_WARMUP", Address: 51, Type: Uint16, Unit: "s", Min: 0, Max: 600, Access: ReadWrite},
	{Name: "WARMUP_STATE", Address: 52, Type: Uint16, Min: 0, Max: 2, Access: ReadOnly},
	{Name: "GENERATOR_POWER_SETTINGS", Address: 53, Type: Uint16, Unit: "W", Min: 1000, Max: 5000, Access: ReadWrite},
	{Name: "AVAILABLE_CURRENT", Address: 54, Type: Uint16, Unit: "A", Min: 0, Max: 250, Access: ReadOnly},
	{Name: "CHARGER_MODE", Address: 55, Type: Uint16, Min: 0, Max: 3, Access: ReadOnly},
	{Name: "PID_KP", Address: 56, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadWrite},
	{Name: "PID_KI", Address: 57, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadWrite},
	{Name: "PID_KD", Address: 58, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadWrite},
	{Name: "PID_INPUT", Address: 59, Type: Float32, Unit: "A", Min: 0, Max: 250, Access: ReadOnly},
	{Name: "PID_OUTPUT", Address: 60, Type: Float32, Unit: "A", Min: 0, Max: 250, Access: ReadOnly},
	{Name: "PID_SET_POINT", Address: 61, Type: Float32, Unit: "A", Min: 0, Max: 250, Access: ReadOnly},
	{Name: "CHARGING_CURRENT_OFFSET", Address: 62, Type: Int16, Unit: "A", Min: -100, Max: 100, Access: ReadWrite},
	{Name: "REGULATED_CURRENT_OFFSET", Address: 63, Type: Int16, Unit: "A", Min: -100, Max: 100, Access: ReadWrite},
	{Name: "VERSION", Address: 64, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "TOTAL_REGS_SIZE", Address: 65, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
}

// proVerter5000Registers follows the EVO series MODBUS communications
// protocol document. Settings block, then live status, then control.
var proVerter5000Registers = []Descriptor{
	{Name: "ABSORB_TIME", Address: 0x2E, Type: Uint16, Unit: "min", Min: 0, Max: 600, Access: ReadWrite},
	{Name: "ABSORB_EXIT_AMPS", Address: 0x2F, Type: Uint16, Unit: "A", Min: 0, Max: 200, Access: ReadWrite},
	{Name: "BULK_CURRENT", Address: 0x30, Type: Uint16, Unit: "A", Min: 0, Max: 200, Access: ReadWrite},
	{Name: "ABSORB_VOLTAGE", Address: 0x31, Type: Uint16, Unit: "dV", Min: 200, Max: 320, Access: ReadWrite},
	{Name: "EQUALIZATION_VOLTAGE", Address: 0x32, Type: Uint16, Unit: "dV", Min: 200, Max: 320, Access: ReadWrite},
	{Name: "FLOATING_VOLTAGE", Address: 0x33, Type: Uint16, Unit: "dV", Min: 200, Max: 320, Access: ReadWrite},
	{Name: "TEMPERATURE_COMPENSATION", Address: 0x34, Type: Uint16, Min: 0, Max: 10, Access: ReadWrite},
	{Name: "BATTERY_LOW_VOLTAGE", Address: 0x35, Type: Uint16, Unit: "dV", Min: 180, Max: 280, Access: ReadWrite},
	{Name: "BATTERY_OVER_VOLTAGE", Address: 0x36, Type: Uint16, Unit: "dV", Min: 250, Max: 350, Access: ReadWrite},
	{Name: "LOW_VOLTAGE_ALARM", Address: 0x37, Type: Uint16, Unit: "dV", Min: 180, Max: 280, Access: ReadWrite},
	{Name: "RESET_VOLTAGE", Address: 0x38, Type: Uint16, Unit: "dV", Min: 180, Max: 320, Access: ReadWrite},
	{Name: "LOW_VOLTAGE_DETECT_TIME", Address: 0x39, Type: Uint16, Unit: "s", Min: 0, Max: 600, Access: ReadWrite},
	{Name: "LOW_VOLTAGE_CUT_OFF_TIME", Address: 0x3A, Type: Uint16, Unit: "s", Min: 0, Max: 600, Access: ReadWrite},
	{Name: "CHARGE_MODE", Address: 0x3B, Type: Uint16, Min: 0, Max: 1, Access: ReadWrite},
	{Name: "ONLINE_MODE", Address: 0x3C, Type: Uint16, Min: 0, Max: 3, Access: ReadWrite},
	{Name: "ONLINE_OPTION", Address: 0x3D, Type: Uint16, Min: 0, Max: 3, Access: ReadWrite},
	{Name: "RESET_TO_BULK_STAGE", Address: 0x3E, Type: Bool, Min: 0, Max: 1, Access: WriteOnly},
	{Name: "CHARGING_PROFILE", Address: 0x3F, Type: Uint16, Min: 0, Max: 10, Access: ReadWrite},
	{Name: "DEFAULT_FREQUENCY", Address: 0x40, Type: Uint16, Unit: "Hz", Min: 50, Max: 60, Access: ReadWrite},
	{Name: "GRID_INPUT_MAX_CURRENT", Address: 0x41, Type: Uint16, Unit: "A", Min: 0, Max: 100, Access: ReadWrite},
	{Name: "BATTERY_TYPE", Address: 0x58, Type: Uint16, Min: 0, Max: 5, Access: ReadWrite},
	{Name: "SYNC_GRID", Address: 0x5B, Type: Bool, Min: 0, Max: 1, Access: ReadWrite},
	{Name: "SYNC_GEN", Address: 0x5C, Type: Bool, Min: 0, Max: 1, Access: ReadWrite},
	{Name: "SAFE_CHARGING", Address: 0x5D, Type: Bool, Min: 0, Max: 1, Access: ReadWrite},
	{Name: "POWER_SAVING", Address: 0x60, Type: Bool, Min: 0, Max: 1, Access: ReadWrite},
	{Name: "REMOTE_SWITCH", Address: 0x63, Type: Bool, Min: 0, Max: 1, Access: ReadWrite},
	{Name: "BUZZER", Address: 0x66, Type: Bool, Min: 0, Max: 1, Access: ReadWrite},
	{Name: "DEFAULT_RESET", Address: 0x68, Type: Bool, Min: 0, Max: 1, Access: WriteOnly},
	{Name: "DATA_LOG_TIME", Address: 0x69, Type: Uint16, Unit: "min", Min: 0, Max: 1440, Access: ReadWrite},
	{Name: "GEN_INPUT_STATUS", Address: 0x100, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "GEN_INPUT_FREQUENCY", Address: 0x101, Type: Uint16, Unit: "dHz", Min: 0, Max: 700, Access: ReadOnly},
	{Name: "GEN_INPUT_VOLTAGE", Address: 0x102, Type: Uint16, Unit: "dV", Min: 0, Max: 3000, Access: ReadOnly},
	{Name: "GRID_INPUT_STATUS", Address: 0x103, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "GRID_INPUT_FREQUENCY", Address: 0x104, Type: Uint16, Unit: "dHz", Min: 0, Max: 700, Access: ReadOnly},
	{Name: "GRID_INPUT_VOLTAGE", Address: 0x105, Type: Uint16, Unit: "dV", Min: 0, Max: 3000, Access: ReadOnly},
	{Name: "INPUT_CURRENT", Address: 0x106, Type: Uint16, Unit: "dA", Min: 0, Max: 2000, Access: ReadOnly},
	{Name: "INPUT_VA", Address: 0x108, Type: Int32, Unit: "VA", Min: 0, Max: 10000, Access: ReadOnly},
	{Name: "INPUT_WATT", Address: 0x10A, Type: Int32, Unit: "W", Min: 0, Max: 10000, Access: ReadOnly},
	{Name: "OUTPUT_FREQUENCY", Address: 0x10C, Type: Uint16, Unit: "dHz", Min: 0, Max: 700, Access: ReadOnly},
	{Name: "OUTPUT_VOLTAGE", Address: 0x10D, Type: Uint16, Unit: "dV", Min: 0, Max: 3000, Access: ReadOnly},
	{Name: "INVERT_CHARGE_CURRENT", Address: 0x10E, Type: Uint16, Unit: "dA", Min: 0, Max: 2000, Access: ReadOnly},
	{Name: "INVERT_CHARGE_VA", Address: 0x110, Type: Int32, Unit: "VA", Min: 0, Max: 10000, Access: ReadOnly},
	{Name: "INVERT_CHARGE_WATT", Address: 0x112, Type: Int32, Unit: "W", Min: 0, Max: 10000, Access: ReadOnly},
	{Name: "BATTERY_VOLTAGE", Address: 0x114, Type: Uint16, Unit: "dV", Min: 0, Max: 400, Access: ReadOnly},
	{Name: "BATTERY_CURRENT", Address: 0x115, Type: Int16, Unit: "A", Min: -300, Max: 300, Access: ReadOnly},
	{Name: "EXTERNAL_CURRENT", Address: 0x116, Type: Int16, Unit: "A", Min: -300, Max: 300, Access: ReadOnly},
	{Name: "BATTERY_TEMPERATURE", Address: 0x117, Type: Int16, Unit: "degC", Min: -40, Max: 125, Access: ReadOnly},
	{Name: "TRANSFORMER_TEMPERATURE", Address: 0x118, Type: Int16, Unit: "degC", Min: -40, Max: 150, Access: ReadOnly},
	{Name: "BUS_BAR_TEMPERATURE", Address: 0x119, Type: Int16, Unit: "degC", Min: -40, Max: 150, Access: ReadOnly},
	{Name: "HEAT_SINK_TEMPERATURE", Address: 0x11A, Type: Int16, Unit: "degC", Min: -40, Max: 150, Access: ReadOnly},
	{Name: "FAN_SPEED", Address: 0x11B, Type: Uint16, Unit: "rpm", Min: 0, Max: 10000, Access: ReadOnly},
	{Name: "OPERATING_MODE", Address: 0x11C, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "ERROR_CODE", Address: 0x11D, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "CHARGE_STAGE", Address: 0x11E, Type: Uint16, Min: 0, Max: 10, Access: ReadOnly},
	{Name: "VERSION", Address: 0x11F, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadOnly},
	{Name: "COMPENSATING_VOLTAGE", Address: 0x120, Type: Uint16, Unit: "dV", Min: 0, Max: 400, Access: ReadOnly},
	{Name: "CONTROL", Address: 0x200, Type: Uint16, Min: 0, Max: 0xFFFF, Access: ReadWrite},
}
