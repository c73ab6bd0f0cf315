package hwio

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// InitRegs initializes the registers found in the bank structure, following
// the instructions in the "hwio" field tags. bank must be a pointer to a
// struct whose fields (those that take part in the bus mapping) are of type
// Reg8, Mem or Device.
//
// The tag is a comma-separated list of options:
//
//	offset=0xNN     address of the field, relative to the bank base
//	bank=N          bank number the field belongs to (default 0)
//	reset=0xNN      initial value (Reg8)
//	rwmask=0xNN     bits that can be modified by writes (Reg8, default all)
//	size=0xNN       size in bytes (Mem, Device); allocates Mem.Data if nil
//	vsize=0xNN      virtual (mirrored) size (Mem)
//	readonly        reject writes
//	writeonly       reject reads
//	rcb[=Name]      bind read callback to method Name (default Read<FIELD>)
//	wcb[=Name]      bind write callback to method Name (default Write<FIELD>)
//	pcb[=Name]      bind peek callback to method Name (default Peek<FIELD>)
func InitRegs(bank any) error {
	v := reflect.ValueOf(bank)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("hwio: bank must be a pointer to struct, got %T", bank)
	}
	sv := v.Elem()
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		tag, ok := f.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		opts, err := parseTag(tag)
		if err != nil {
			return fmt.Errorf("hwio: field %s: %w", f.Name, err)
		}
		switch ptr := sv.Field(i).Addr().Interface().(type) {
		case *Reg8:
			err = initReg8(v, f.Name, ptr, opts)
		case *Mem:
			err = initMem(v, f.Name, ptr, opts)
		case *Device:
			err = initDevice(v, f.Name, ptr, opts)
		default:
			err = fmt.Errorf("unsupported field type %T", ptr)
		}
		if err != nil {
			return fmt.Errorf("hwio: field %s: %w", f.Name, err)
		}
	}
	return nil
}

// MustInitRegs is like InitRegs, but panics on error. Bank layouts are
// compile-time data, so a failure here is a programming error.
func MustInitRegs(bank any) {
	if err := InitRegs(bank); err != nil {
		panic(err)
	}
}

type regInfo struct {
	offset uint16
	regPtr any
}

// bankGetRegs returns the mappable fields of the given bank number, in
// field declaration order.
func bankGetRegs(bank any, bankNum int) ([]regInfo, error) {
	v := reflect.ValueOf(bank)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("hwio: bank must be a pointer to struct, got %T", bank)
	}
	sv := v.Elem()
	st := sv.Type()
	var regs []regInfo
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		tag, ok := f.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		opts, err := parseTag(tag)
		if err != nil {
			return nil, fmt.Errorf("hwio: field %s: %w", f.Name, err)
		}
		offStr, ok := opts["offset"]
		if !ok {
			continue
		}
		bnum := uint64(0)
		if bstr, ok := opts["bank"]; ok {
			bnum, err = parseTagNum("bank", bstr, 8)
			if err != nil {
				return nil, fmt.Errorf("hwio: field %s: %w", f.Name, err)
			}
		}
		if int(bnum) != bankNum {
			continue
		}
		off, err := parseTagNum("offset", offStr, 16)
		if err != nil {
			return nil, fmt.Errorf("hwio: field %s: %w", f.Name, err)
		}
		regs = append(regs, regInfo{
			offset: uint16(off),
			regPtr: sv.Field(i).Addr().Interface(),
		})
	}
	return regs, nil
}

func initReg8(bank reflect.Value, fname string, reg *Reg8, opts map[string]string) error {
	reg.Name = fname
	for key, val := range opts {
		var err error
		var n uint64
		switch key {
		case "offset":
			_, err = parseTagNum(key, val, 16)
		case "bank":
			_, err = parseTagNum(key, val, 8)
		case "reset":
			if n, err = parseTagNum(key, val, 8); err == nil {
				reg.Value = uint8(n)
			}
		case "rwmask":
			if n, err = parseTagNum(key, val, 8); err == nil {
				reg.RoMask = ^uint8(n)
			}
		case "readonly":
			reg.Flags |= ReadOnlyFlag
		case "writeonly":
			reg.Flags |= WriteOnlyFlag
		case "rcb":
			reg.ReadCb, err = bindValReadCb(bank, cbName("Read", fname, val))
		case "wcb":
			reg.WriteCb, err = bindValWriteCb(bank, cbName("Write", fname, val))
		case "pcb":
			reg.PeekCb, err = bindValReadCb(bank, cbName("Peek", fname, val))
		default:
			err = fmt.Errorf("invalid option %q", key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func initMem(bank reflect.Value, fname string, mem *Mem, opts map[string]string) error {
	mem.Name = fname
	for key, val := range opts {
		var err error
		var n uint64
		switch key {
		case "offset":
			_, err = parseTagNum(key, val, 16)
		case "bank":
			_, err = parseTagNum(key, val, 8)
		case "size":
			if n, err = parseTagNum(key, val, 32); err == nil {
				switch {
				case mem.Data == nil:
					mem.Data = make([]byte, n)
				case len(mem.Data) != int(n):
					err = fmt.Errorf("size %#x does not match data size %#x", n, len(mem.Data))
				}
			}
		case "vsize":
			if n, err = parseTagNum(key, val, 32); err == nil {
				mem.VSize = int(n)
			}
		case "readonly":
			mem.Flags |= MemFlag8ReadOnly
		case "wcb":
			mem.WriteCb, err = bindAddrWriteCb(bank, cbName("Write", fname, val))
		default:
			err = fmt.Errorf("invalid option %q", key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func initDevice(bank reflect.Value, fname string, dev *Device, opts map[string]string) error {
	dev.Name = fname
	for key, val := range opts {
		var err error
		var n uint64
		switch key {
		case "offset":
			_, err = parseTagNum(key, val, 16)
		case "bank":
			_, err = parseTagNum(key, val, 8)
		case "size":
			if n, err = parseTagNum(key, val, 32); err == nil {
				dev.Size = int(n)
			}
		case "readonly":
			dev.Flags |= ReadOnlyFlag
		case "writeonly":
			dev.Flags |= WriteOnlyFlag
		case "rcb":
			dev.ReadCb, err = bindAddrReadCb(bank, cbName("Read", fname, val))
		case "wcb":
			dev.WriteCb, err = bindAddrWriteCb(bank, cbName("Write", fname, val))
		case "pcb":
			dev.PeekCb, err = bindAddrReadCb(bank, cbName("Peek", fname, val))
		default:
			err = fmt.Errorf("invalid option %q", key)
		}
		if err != nil {
			return err
		}
	}
	if dev.Size == 0 {
		return fmt.Errorf("device requires a size option")
	}
	return nil
}

func parseTag(tag string) (map[string]string, error) {
	opts := make(map[string]string)
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, val, _ := strings.Cut(part, "=")
		if _, found := opts[key]; found {
			return nil, fmt.Errorf("duplicate option %q", key)
		}
		opts[key] = val
	}
	return opts, nil
}

func parseTagNum(key, val string, bits int) (uint64, error) {
	if val == "" {
		return 0, fmt.Errorf("option %s requires a value", key)
	}
	n, err := strconv.ParseUint(val, 0, bits)
	if err != nil {
		return 0, fmt.Errorf("option %s: invalid value %q", key, val)
	}
	return n, nil
}

// cbName computes the callback method name for a field: the explicit name
// from the tag if present, otherwise prefix + uppercased field name.
func cbName(prefix, fname, override string) string {
	if override != "" {
		return override
	}
	return prefix + strings.ToUpper(fname)
}

func bindValReadCb(bank reflect.Value, name string) (func(uint8) uint8, error) {
	m, err := lookupMethod(bank, name)
	if err != nil {
		return nil, err
	}
	fn, ok := m.Interface().(func(uint8) uint8)
	if !ok {
		return nil, fmt.Errorf("method %s: want func(uint8) uint8, got %T", name, m.Interface())
	}
	return fn, nil
}

func bindValWriteCb(bank reflect.Value, name string) (func(uint8, uint8), error) {
	m, err := lookupMethod(bank, name)
	if err != nil {
		return nil, err
	}
	fn, ok := m.Interface().(func(uint8, uint8))
	if !ok {
		return nil, fmt.Errorf("method %s: want func(old, val uint8), got %T", name, m.Interface())
	}
	return fn, nil
}

func bindAddrReadCb(bank reflect.Value, name string) (func(uint16) uint8, error) {
	m, err := lookupMethod(bank, name)
	if err != nil {
		return nil, err
	}
	fn, ok := m.Interface().(func(uint16) uint8)
	if !ok {
		return nil, fmt.Errorf("method %s: want func(addr uint16) uint8, got %T", name, m.Interface())
	}
	return fn, nil
}

func bindAddrWriteCb(bank reflect.Value, name string) (func(uint16, uint8), error) {
	m, err := lookupMethod(bank, name)
	if err != nil {
		return nil, err
	}
	fn, ok := m.Interface().(func(uint16, uint8))
	if !ok {
		return nil, fmt.Errorf("method %s: want func(addr uint16, val uint8), got %T", name, m.Interface())
	}
	return fn, nil
}

func lookupMethod(bank reflect.Value, name string) (reflect.Value, error) {
	m := bank.MethodByName(name)
	if !m.IsValid() {
		return reflect.Value{}, fmt.Errorf("callback method %s not found", name)
	}
	return m, nil
}
