package callback

import "fmt"

// MpesaReceiptItemName is the fixed key the receipt value arrives under in a
// successful callback's item list.
const MpesaReceiptItemName = "MpesaReceiptNumber"

// STKCallbackEnvelope is the exact wire shape of the provider's asynchronous
// result. Anything that does not parse into this is rejected with a 400.
type STKCallbackEnvelope struct {
	Body struct {
		STKCallback STKCallback `json:"stkCallback"`
	} `json:"Body"`
}

type STKCallback struct {
	MerchantRequestID string            `json:"MerchantRequestID"`
	CheckoutRequestID string            `json:"CheckoutRequestID"`
	ResultCode        int               `json:"ResultCode"`
	ResultDesc        string            `json:"ResultDesc"`
	CallbackMetadata  *CallbackMetadata `json:"CallbackMetadata,omitempty"`
}

type CallbackMetadata struct {
	Item []MetadataItem `json:"Item"`
}

type MetadataItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value,omitempty"`
}

// Receipt extracts the provider receipt from the item list. Empty when absent,
// which is the case for every non-zero result code.
func (c *STKCallback) Receipt() string {
	if c.CallbackMetadata == nil {
		return ""
	}
	for _, item := range c.CallbackMetadata.Item {
		if item.Name != MpesaReceiptItemName || item.Value == nil {
			continue
		}
		if s, ok := item.Value.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", item.Value)
	}
	return ""
}
