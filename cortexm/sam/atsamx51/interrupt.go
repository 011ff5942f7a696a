package atsamx51

import "omibyte.io/veneer/cortexm"

type Interrupt = cortexm.Interrupt

const (
	IRQ_PM Interrupt = iota
	IRQ_MCLK
	IRQ_OSCCTRL_XOSC0_FAIL
	IRQ_OSCCTRL_XOSC1_FAIL
	IRQ_OSCCTRL_DFLL
	IRQ_OSCCTRL_DPLL0
	IRQ_OSCCTRL_DPLL1
	IRQ_OSC32KCTRL
	IRQ_SUPC_OTHER
	IRQ_SUPC_BODDET
	IRQ_WDT
	IRQ_RTC
	IRQ_EIC_EXTINT_0
	IRQ_EIC_EXTINT_1
	IRQ_EIC_EXTINT_2
	IRQ_EIC_EXTINT_3
	IRQ_EIC_EXTINT_4
	IRQ_EIC_EXTINT_5
	IRQ_EIC_EXTINT_6
	IRQ_EIC_EXTINT_7
	IRQ_EIC_EXTINT_8
	IRQ_EIC_EXTINT_9
	IRQ_EIC_EXTINT_10
	IRQ_EIC_EXTINT_11
	IRQ_EIC_EXTINT_12
	IRQ_EIC_EXTINT_13
	IRQ_EIC_EXTINT_14
	IRQ_EIC_EXTINT_15
	IRQ_FREQM
	IRQ_NVMCTRL_0
	IRQ_NVMCTRL_1
	IRQ_DMAC_0
	IRQ_DMAC_1
	IRQ_DMAC_2
	IRQ_DMAC_3
	IRQ_DMAC_OTHER
	IRQ_EVSYS_0
	IRQ_EVSYS_1
	IRQ_EVSYS_2
	IRQ_EVSYS_3
	IRQ_EVSYS_OTHER
	IRQ_PAC
	IRQ_SERCOM0_0
	IRQ_SERCOM0_1
	IRQ_SERCOM0_2
	IRQ_SERCOM0_OTHER
	IRQ_SERCOM1_0
	IRQ_SERCOM1_1
	IRQ_SERCOM1_2
	IRQ_SERCOM1_OTHER
	IRQ_SERCOM2_0
	IRQ_SERCOM2_1
	IRQ_SERCOM2_2
	IRQ_SERCOM2_OTHER
	IRQ_SERCOM3_0
	IRQ_SERCOM3_1
	IRQ_SERCOM3_2
	IRQ_SERCOM3_OTHER
	IRQ_SERCOM4_0
	IRQ_SERCOM4_1
	IRQ_SERCOM4_2
	IRQ_SERCOM4_OTHER
	IRQ_SERCOM5_0
	IRQ_SERCOM5_1
	IRQ_SERCOM5_2
	IRQ_SERCOM5_OTHER
	IRQ_CAN0
	IRQ_CAN1
	IRQ_USB_OTHER
	IRQ_USB_SOF_HSOF
	IRQ_USB_TRCPT0
	IRQ_USB_TRCPT1
	IRQ_GMAC
	IRQ_TCC0_OTHER
	IRQ_TCC0_MC0
	IRQ_TCC0_MC1
	IRQ_TCC0_MC2
	IRQ_TCC0_MC3
	IRQ_TCC0_MC4
	IRQ_TCC0_MC5
	IRQ_TCC1_OTHER
	IRQ_TCC1_MC0
	IRQ_TCC1_MC1
	IRQ_TCC1_MC2
	IRQ_TCC1_MC3
	IRQ_TCC2_OTHER
	IRQ_TCC2_MC0
	IRQ_TCC2_MC1
	IRQ_TCC2_MC2
	IRQ_TCC3_OTHER
	IRQ_TCC3_MC0
	IRQ_TCC3_MC1
	IRQ_TCC4_OTHER
	IRQ_TCC4_MC0
	IRQ_TCC4_MC1
	IRQ_TC0
	IRQ_TC1
	IRQ_TC2
	IRQ_TC3
	IRQ_TC4
	IRQ_TC5
	IRQ_TC6
	IRQ_TC7
	IRQ_PDEC_OTHER
	IRQ_PDEC_MC0
	IRQ_PDEC_MC1
	IRQ_ADC0_OTHER
	IRQ_ADC0_RESRDY
	IRQ_ADC1_OTHER
	IRQ_ADC1_RESRDY
	IRQ_AC
	IRQ_DAC_OTHER
	IRQ_DAC_EMPTY_0
	IRQ_DAC_EMPTY_1
	IRQ_DAC_RESRDY_0
	IRQ_DAC_RESRDY_1
	IRQ_I2S
	IRQ_PCC
	IRQ_AES
	IRQ_TRNG
	IRQ_ICM
	IRQ_QSPI
	IRQ_SDHC0
	IRQ_SDHC1
)
