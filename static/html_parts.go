package static

import "fmt"

var (
	Head = `
    <!DOCTYPE html>
    <html>
    <head>
        <title>Clarke-Wright over Voronoi</title>
		<style>
			body {
				background-color: #1F1F1F;
				color: #d3d3d3;
				font-family: Consolas, monospace;
				overflow: hidden;
			}

			#container {
				display: flex;
				width: 100%;
				height: 100vh;
				box-sizing: border-box;
			}

			#left-container {
				width: 50%;
				padding: 10px;
				box-sizing: border-box;
				overflow-y: auto;
			}

			#right-container {
				width: 50%;
				padding: 10px;
				box-sizing: border-box;
				border-left: 5px solid #757575;
				overflow-y: auto;
				overflow-x: auto;
				background-color: #1e1e1e;
			}

			#logs {
				white-space: pre-wrap;
				word-wrap: break-word;
				color: #d3d3d3;
				font-family: Consolas, monospace;
			}

			input[type="number"],
			input[type="submit"] {
				background-color: #2b2b2b;
				color: #d3d3d3;
				border: 1px solid #444;
				padding: 5px;
				margin: 5px 0;
				border-radius: 4px;
			}

			input[type="submit"]:hover {
				background-color: #444;
				cursor: pointer;
			}

			label, h1 {
				color: #d3d3d3;
			}

			.summary td {
				padding: 2px 10px 2px 0;
			}
        </style>
    </head>
    <body>
        <div id="container">
            <div id="left-container">`

	Middle = `
            </div>
            <div id="right-container">
                <h1>Logs</h1>
                <div id="logs">`

	Tail = `
                </div>
            </div>
        </div>

        <script>
            document.getElementById('diagram-form').addEventListener('submit', function (e) {
                e.preventDefault();
                const params = new URLSearchParams(new FormData(this)).toString();

                fetch('/', {
                    method: 'POST',
                    body: params,
                    headers: {
                        'Content-Type': 'application/x-www-form-urlencoded'
                    }
                })
                .then(response => {
                    if (!response.ok) {
                        return response.text().then(text => { throw new Error(text); });
                    }
                    return response.text();
                })
                .then(html => {
                    document.open();
                    document.write(html);
                    document.close();
                })
                .catch(error => {
                    console.error('request failed:', error);
                });
            });
        </script>
    </body>
    </html>
    `
)

type FormValues struct {
	Width, Height, Clients, Capacity, MaxDemand int
	Random                                      bool
}

// Form renders the parameter form with the current values filled in.
func Form(v FormValues) string {
	checked := ""
	if v.Random {
		checked = " checked"
	}
	return fmt.Sprintf(`
                <h1>Instance</h1>
                <form id="diagram-form" method="POST">
                    <label for="width">Width:</label>
                    <input type="number" id="width" name="width" value="%d" min="10" max="5000"><br>
                    <label for="height">Height:</label>
                    <input type="number" id="height" name="height" value="%d" min="10" max="5000"><br>
                    <label for="clients">Clients (incl. depot):</label>
                    <input type="number" id="clients" name="clients" value="%d" min="1" max="2000"><br>
                    <label for="capacity">Vehicle capacity:</label>
                    <input type="number" id="capacity" name="capacity" value="%d" min="1"><br>
                    <label for="demand">Max demand:</label>
                    <input type="number" id="demand" name="demand" value="%d" min="0"><br>
                    <label for="random">Random layout:</label>
                    <input type="checkbox" id="random" name="random" value="true"%s><br><br>
                    <input type="submit" value="Build">
                </form>
    `, v.Width, v.Height, v.Clients, v.Capacity, v.MaxDemand, checked)
}
