package booth

import (
	"encoding/json"
	"fmt"

	"boothx/internal/sales"
)

const (
	exportBinding = "boothxExport"
	buttonID      = "boothx-export-button"
	buttonLabel   = "Excelエクスポート"
)

// buttonScript adds the bottom-left export button once the DOM is ready,
// only on documents whose path passes the sales gate.
const buttonScript = `(() => {
	const gate = new RegExp(%s);
	const inject = () => {
		if (!gate.test(window.location.pathname)) return;
		if (document.getElementById(%s)) return;
		const btn = document.createElement("button");
		btn.id = %s;
		btn.textContent = %s;
		Object.assign(btn.style, {
			position: "fixed",
			bottom: "20px",
			left: "20px",
			zIndex: "10000",
			padding: "10px 20px",
			backgroundColor: "#007bff",
			color: "#fff",
			border: "none",
			borderRadius: "4px",
			cursor: "pointer",
		});
		btn.addEventListener("click", () => window[%s]());
		document.body.appendChild(btn);
	};
	if (document.readyState === "loading") {
		document.addEventListener("DOMContentLoaded", inject);
	} else {
		inject();
	}
})()`

// alertScript shows msg without blocking the caller on the dialog.
const alertScript = `(msg) => { setTimeout(() => alert(msg), 0); }`

// ButtonScript returns the injection script with its constants filled in.
func ButtonScript() string {
	return fmt.Sprintf(buttonScript,
		stringToJS(sales.GatePattern),
		stringToJS(buttonID),
		stringToJS(buttonID),
		stringToJS(buttonLabel),
		stringToJS(exportBinding),
	)
}

// stringToJS quotes s as a JavaScript string literal.
func stringToJS(s string) string {
	quoted, _ := json.Marshal(s)
	return string(quoted)
}
