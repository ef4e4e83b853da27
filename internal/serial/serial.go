// Package serial implements the link port.
package serial

import (
	"github.com/thelolagemann/gomeboy-core/internal/mmu"
	"github.com/thelolagemann/gomeboy-core/internal/types"
)

// Controller is the serial controller. Before a transfer, data holds the
// byte to be sent (types.SB). Writing SC with bits 7 and 0 set starts a
// transfer on the internal clock, which completes at once: the byte is
// exchanged with the attached device, and bit 7 of SC is cleared.
// Transfers on the external clock wait for a partner that never clocks,
// so they stay pending.
type Controller struct {
	data    uint8
	control uint8

	AttachedDevice Device
}

// NewController returns a Controller with nothing attached.
func NewController() *Controller {
	return &Controller{AttachedDevice: nullDevice{}}
}

// Attach attaches a Device to the Controller.
func (c *Controller) Attach(d Device) {
	c.AttachedDevice = d
}

// Connect routes SB and SC to the controller.
func (c *Controller) Connect(m *mmu.MMU) {
	m.AttachIO(types.SB, func(v uint8) {
		c.data = v
	}, func() uint8 {
		return c.data
	})
	m.AttachIO(types.SC, c.writeControl, func() uint8 {
		// unused bits read high
		return c.control | 0x7E
	})
}

func (c *Controller) writeControl(v uint8) {
	c.control = v
	if v&types.Bit7 == 0 || v&types.Bit0 == 0 {
		return
	}
	c.data = c.AttachedDevice.Exchange(c.data)
	c.control &^= types.Bit7
}
