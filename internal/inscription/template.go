package inscription

import "text/template"

// The payload is written verbatim, every other value goes through html.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{html .Meta.Name}}</title>
  <style>
    body { font-family: monospace; text-align: center; background: #0b0b0b; color: #e0e0e0; padding: 20px; display: flex; flex-direction: column; align-items: center; min-height: 100vh; }
    .preview { border: 1px solid #333; padding: 20px; background: #161616; border-radius: 12px; box-shadow: 0 4px 20px rgba(0,0,0,0.5); margin-bottom: 20px; }
    img { max-width: 100%; border-radius: 4px; }
    #details { background: #161616; padding: 20px; border-radius: 12px; border: 1px solid #333; width: 100%; max-width: 400px; text-align: left; }
    h1 { font-size: 1.2em; margin: 0 0 15px 0; color: #00ffcc; text-transform: uppercase; letter-spacing: 1px; border-bottom: 1px solid #333; padding-bottom: 10px; }
    .row { display: flex; justify-content: space-between; margin-bottom: 8px; font-size: 0.9em; }
    .label { color: #888; }
    .val { color: #fff; font-weight: bold; text-align: right; }
    .id-box { margin-top: 15px; font-size: 0.7em; color: #555; word-break: break-all; background: #000; padding: 10px; border-radius: 4px; }
    .footer { margin-top: auto; color: #444; font-size: 0.7em; padding-top: 20px; }
  </style>
</head>
<body>
  <div class="preview">
  {{if .Image}}<img src="{{html .Image}}" alt="RGB Preview" />{{else}}{{.ImageNote}}{{end}}
  </div>

  <div id="details">
    <h1>{{html .Meta.Ticker}} / {{html .Meta.Type}}</h1>
    <div class="row"><span class="label">Name</span> <span class="val">{{html .Meta.Name}}</span></div>
    <div class="row"><span class="label">Ticker</span> <span class="val">{{html .Meta.Ticker}}</span></div>
    <div class="row"><span class="label">Issuer</span> <span class="val">{{html .Meta.Issuer}}</span></div>

    <div class="id-box">
      ID: {{html .Meta.ID}}
    </div>
  </div>

  <div class="footer">
    RGB21 INSCRIPTION • GENESIS SEAL
  </div>

  <script type="{{.PayloadType}}" id="{{.PayloadID}}">
{{.Payload}}
  </script>
</body>
</html>
`

var document = template.Must(template.New("inscription").Parse(documentTemplate))
